package parser_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vocal-dev/vocal/pkg/parser"
)

var _ = Describe("BashParser", func() {
	var p *parser.BashParser

	BeforeEach(func() {
		p = parser.NewBashParser()
	})

	Describe("Parse", func() {
		It("rejects empty commands", func() {
			_, err := p.Parse("   ")
			Expect(err).To(MatchError(parser.ErrEmptyCommand))
		})

		It("rejects invalid syntax", func() {
			_, err := p.Parse("echo 'unterminated")
			Expect(err).To(MatchError(parser.ErrParseFailed))
		})

		It("extracts a simple command with arguments", func() {
			result, err := p.Parse(`git status --short`)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Commands).To(HaveLen(1))
			Expect(result.Commands[0].Name).To(Equal("git"))
			Expect(result.Commands[0].Args).To(Equal([]string{"status", "--short"}))
			Expect(result.Commands[0].String()).To(Equal("git status --short"))
		})

		It("descends into pipelines, chains and substitutions", func() {
			result, err := p.Parse(`ls | grep foo && echo "$(date)"; (cd /tmp && pwd)`)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.CommandNames()).To(Equal([]string{"ls", "grep", "echo", "date", "cd", "pwd"}))
			Expect(result.HasCommand("date")).To(BeTrue())
			Expect(result.HasCommand("rm")).To(BeFalse())
		})

		It("strips quotes from words", func() {
			result, err := p.Parse(`echo 'single' "double"`)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Commands[0].Args).To(Equal([]string{"single", "double"}))
		})
	})

	Describe("file writes", func() {
		DescribeTable("detects the write target",
			func(command string, op parser.WriteOp, path string) {
				result, err := p.Parse(command)
				Expect(err).NotTo(HaveOccurred())

				Expect(result.FileWrites).To(ContainElement(And(
					HaveField("Operation", op),
					HaveField("Path", path),
				)))
			},
			Entry("redirect", "echo hi > out.txt", parser.WriteOpRedirect, "out.txt"),
			Entry("append", "echo hi >> log.txt", parser.WriteOpAppend, "log.txt"),
			Entry("tee", "echo hi | tee -a a.txt", parser.WriteOpTee, "a.txt"),
			Entry("cp", "cp src.txt dst.txt", parser.WriteOpCopy, "dst.txt"),
			Entry("mv", "mv old.txt new.txt", parser.WriteOpMove, "new.txt"),
		)

		It("ignores input redirection", func() {
			result, err := p.Parse("wc -l < in.txt")
			Expect(err).NotTo(HaveOccurred())

			Expect(result.FileWrites).To(BeEmpty())
		})
	})

	Describe("Summarize", func() {
		It("lists distinct command names and written paths", func() {
			summary := p.Summarize("cat a > b.txt && cat c > b.txt")

			Expect(summary).To(Equal(parser.Summary{
				Commands: []string{"cat"},
				Writes:   []string{"b.txt"},
			}))
		})

		It("marks unparseable commands", func() {
			Expect(p.Summarize("if then fi (").Unparsed).To(BeTrue())
		})

		It("returns an empty summary for an empty command", func() {
			Expect(p.Summarize("")).To(Equal(parser.Summary{}))
		})
	})
})
