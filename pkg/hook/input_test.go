package hook_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vocal-dev/vocal/pkg/hook"
)

var _ = Describe("ToolInput", func() {
	input := hook.ToolInput{
		"command":   "ls -la",
		"content":   42.0,
		"flag":      true,
		"file_path": "./main.go",
	}

	It("reports presence regardless of type", func() {
		Expect(input.Has("content")).To(BeTrue())
		Expect(input.Has("missing")).To(BeFalse())
	})

	It("returns strings only for JSON strings", func() {
		s, ok := input.String("command")
		Expect(ok).To(BeTrue())
		Expect(s).To(Equal("ls -la"))

		_, ok = input.String("content")
		Expect(ok).To(BeFalse())

		_, ok = input.String("missing")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Context", func() {
	It("exposes command and file path", func() {
		ctx := &hook.Context{
			ToolName:  hook.ToolBash,
			SessionID: "abc",
			ToolInput: hook.ToolInput{"command": "pwd"},
		}

		cmd, ok := ctx.GetCommand()
		Expect(ok).To(BeTrue())
		Expect(cmd).To(Equal("pwd"))

		_, ok = ctx.GetFilePath()
		Expect(ok).To(BeFalse())

		Expect(ctx.IsBashTool()).To(BeTrue())
	})
})
