package report_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vocal-dev/vocal/internal/audit"
	"github.com/vocal-dev/vocal/internal/color"
	"github.com/vocal-dev/vocal/internal/report"
	"github.com/vocal-dev/vocal/internal/session"
	"github.com/vocal-dev/vocal/internal/state"
)

var _ = Describe("Report", func() {
	var (
		theme color.Theme
		now   time.Time
	)

	BeforeEach(func() {
		theme = color.NewTheme(false)
		now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	})

	Describe("Truncate", func() {
		It("leaves short strings alone", func() {
			Expect(report.Truncate("git status", 20)).To(Equal("git status"))
			Expect(report.Truncate("git status", 0)).To(Equal("git status"))
		})

		It("cuts long strings with an ellipsis", func() {
			out := report.Truncate("cat README.md | grep vocal", 10)

			Expect(out).To(HaveSuffix("…"))
			Expect(len([]rune(out))).To(BeNumerically("<=", 10))
		})
	})

	Describe("RenderTable", func() {
		It("renders nothing without rows", func() {
			Expect(report.RenderTable([]string{"A"}, nil, theme)).To(BeEmpty())
		})

		It("renders every cell", func() {
			out := report.RenderTable(
				[]string{"Marker", "State"},
				[][]string{{"hands-free", "on"}, {"cycle-trigger", "off"}},
				theme,
			)

			Expect(out).To(ContainSubstring("hands-free"))
			Expect(out).To(ContainSubstring("cycle-trigger"))
			Expect(out).To(ContainSubstring("╭"))
		})
	})

	Describe("FormatDuration", func() {
		It("keeps two units", func() {
			Expect(report.FormatDuration(4*time.Minute + 30*time.Second)).To(Equal("4 minutes 30 seconds"))
		})
	})

	Describe("Age", func() {
		It("is relative to now", func() {
			Expect(report.Age(now.Add(-2*time.Minute), now)).To(Equal("2 minutes ago"))
		})

		It("renders a dash for the zero time", func() {
			Expect(report.Age(time.Time{}, now)).To(Equal("-"))
		})
	})

	Describe("RenderStatus", func() {
		It("shows an active session", func() {
			out := report.RenderStatus(&report.Status{
				Snapshot: state.Snapshot{
					HandsFreeActive: true,
					HandsFree:       state.MarkerStatus{Set: true, Since: now.Add(-time.Hour)},
				},
				CycleCount:      1,
				MaxCycles:       10,
				WindowRemaining: 3 * time.Minute,
				Session: &session.Info{
					SessionID: "sess-1",
					TmuxPane:  "%3",
					Timestamp: now.Add(-time.Minute).Unix(),
				},
				StateDir: "/tmp/state",
				Now:      now,

				InjectorBinary:    "tmux",
				InjectorAvailable: false,
			}, theme)

			Expect(out).To(ContainSubstring("Hands-free: ACTIVE"))
			Expect(out).To(ContainSubstring("Injector: tmux (not found on PATH)"))
			Expect(out).To(ContainSubstring("1 hour ago"))
			Expect(out).To(ContainSubstring("Cycles: 1/10 (window closes in 3 minutes)"))
			Expect(out).To(ContainSubstring("sess-1, pane %3"))
		})

		It("shows the emergency stop over hands-free", func() {
			out := report.RenderStatus(&report.Status{
				Snapshot: state.Snapshot{
					HandsFree:     state.MarkerStatus{Set: true},
					EmergencyStop: state.MarkerStatus{Set: true, Since: now},
				},
				MaxCycles: 10,
				Now:       now,
			}, theme)

			Expect(out).To(ContainSubstring("Hands-free: STOPPED"))
			Expect(out).To(ContainSubstring("Session: none recorded"))
			Expect(out).NotTo(ContainSubstring("window closes"))
		})

		DescribeTable("explains when the session cannot be injected into",
			func(info session.Info, expected string) {
				info.SessionID = "sess-2"
				info.Timestamp = now.Unix()

				out := report.RenderStatus(&report.Status{
					Session:   &info,
					MaxCycles: 10,
					Now:       now,
				}, theme)

				Expect(out).To(ContainSubstring("sess-2, " + expected))
			},
			Entry("tmux socket without a pane",
				session.Info{Tmux: "/tmp/tmux-1000/default,123,0"},
				"no tmux pane recorded, inject has no target"),
			Entry("outside tmux", session.Info{}, "not in tmux, inject has no target"),
		)
	})

	Describe("RenderAudit", func() {
		It("says when there is nothing to show", func() {
			Expect(report.RenderAudit(nil, now, 0, theme)).To(Equal("No audit entries."))
		})

		It("lists commands, writes and rules", func() {
			out := report.RenderAudit([]*audit.Entry{
				{
					Timestamp: now.Add(-30 * time.Second),
					Event:     "PreToolUse",
					Tool:      "Bash",
					Decision:  "block",
					Rule:      "dangerous-command",
					Commands:  []string{"curl"},
					Writes:    []string{"out.txt"},
				},
				{
					Timestamp: now,
					Event:     "PreToolUse",
					Tool:      "Write",
					Decision:  "allow",
					FilePath:  "./notes.txt",
				},
			}, now, 0, theme)

			Expect(out).To(ContainSubstring("curl > out.txt [dangerous-command]"))
			Expect(out).To(ContainSubstring("./notes.txt"))
			Expect(out).To(ContainSubstring("block"))
		})
	})
})
