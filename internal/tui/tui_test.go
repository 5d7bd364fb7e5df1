package tui_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vocal-dev/vocal/internal/tui"
)

var _ = Describe("TUI", func() {
	It("falls back outside a terminal", func() {
		Expect(tui.IsTerminal()).To(BeFalse())
		Expect(tui.New().IsInteractive()).To(BeFalse())
		Expect(tui.NewWithFallback(true).IsInteractive()).To(BeFalse())
	})
})

var _ = Describe("FallbackUI", func() {
	var out *bytes.Buffer

	BeforeEach(func() {
		out = &bytes.Buffer{}
	})

	ui := func(input string) *tui.FallbackUI {
		return tui.NewFallbackUI(strings.NewReader(input), out)
	}

	Describe("Confirm", func() {
		DescribeTable("parses answers",
			func(input string, def, expected bool) {
				answer, err := ui(input).Confirm("Proceed?", "", def)
				Expect(err).NotTo(HaveOccurred())
				Expect(answer).To(Equal(expected))
			},
			Entry("yes", "y\n", false, true),
			Entry("YES", "YES\n", false, true),
			Entry("no", "n\n", true, false),
			Entry("empty takes default true", "\n", true, true),
			Entry("EOF takes default false", "", false, false),
		)

		It("rejects other answers", func() {
			_, err := ui("maybe\n").Confirm("Proceed?", "", true)
			Expect(err).To(MatchError(tui.ErrInvalidChoice))
		})

		It("prints the description and hint", func() {
			_, _ = ui("\n").Confirm("Clear the stop?", "Hands-free stays off.", true)

			Expect(out.String()).To(ContainSubstring("Hands-free stays off."))
			Expect(out.String()).To(ContainSubstring("Clear the stop? [Y/n]: "))
		})
	})

	Describe("Select", func() {
		options := []tui.Option{
			{Label: "Project settings", Value: "project"},
			{Label: "User settings", Value: "user"},
		}

		It("accepts a number", func() {
			Expect(ui("2\n").Select("Where?", options, "project")).To(Equal("user"))
		})

		It("accepts a value", func() {
			Expect(ui("project\n").Select("Where?", options, "user")).To(Equal("project"))
		})

		It("takes the default on empty input", func() {
			Expect(ui("\n").Select("Where?", options, "user")).To(Equal("user"))
			Expect(out.String()).To(ContainSubstring("* 2) User settings"))
		})

		It("rejects out of range numbers", func() {
			_, err := ui("3\n").Select("Where?", options, "user")
			Expect(err).To(MatchError(tui.ErrInvalidChoice))
		})
	})
})
