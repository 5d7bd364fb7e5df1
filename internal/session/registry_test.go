package session_test

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vocal-dev/vocal/internal/session"
	"github.com/vocal-dev/vocal/pkg/hook"
)

var _ = Describe("Registry", func() {
	var (
		path     string
		registry *session.Registry
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "state", "session-registry.json")
		registry = session.NewRegistry(path)
	})

	It("reports ErrNoSession before anything is saved", func() {
		info, err := registry.Load()
		Expect(err).To(MatchError(session.ErrNoSession))
		Expect(info).To(BeNil())
		Expect(registry.LoadOrNil()).To(BeNil())
	})

	It("round-trips a saved record", func() {
		saved := &session.Info{
			SessionID:   "abc",
			TerminalPID: "4242",
			TmuxPane:    "%3",
			CWD:         "/work",
			Timestamp:   1700000000,
		}

		Expect(registry.Save(saved)).To(Succeed())

		loaded, err := registry.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(saved))
		Expect(loaded.SavedAt().Unix()).To(Equal(int64(1700000000)))
	})

	It("keeps only the latest record", func() {
		Expect(registry.Save(&session.Info{SessionID: "first"})).To(Succeed())
		Expect(registry.Save(&session.Info{SessionID: "second"})).To(Succeed())

		Expect(registry.LoadOrNil().SessionID).To(Equal("second"))
	})

	It("writes the documented JSON keys", func() {
		Expect(registry.Save(&session.Info{SessionID: "abc"})).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		for _, key := range []string{
			"session_id", "terminal_pid", "term_session", "iterm_session",
			"tmux", "tmux_pane", "cwd", "timestamp",
		} {
			Expect(string(data)).To(ContainSubstring(`"` + key + `"`))
		}
	})

	It("treats a corrupt file as no session", func() {
		Expect(os.MkdirAll(filepath.Dir(path), 0o700)).To(Succeed())
		Expect(os.WriteFile(path, []byte("{not json"), 0o600)).To(Succeed())

		_, err := registry.Load()
		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(session.ErrNoSession))
		Expect(registry.LoadOrNil()).To(BeNil())
	})

	It("rejects a nil record", func() {
		Expect(registry.Save(nil)).NotTo(Succeed())
	})

	It("clears the record", func() {
		Expect(registry.Save(&session.Info{SessionID: "abc"})).To(Succeed())
		Expect(registry.Clear()).To(Succeed())
		Expect(registry.Clear()).To(Succeed())

		Expect(registry.LoadOrNil()).To(BeNil())
	})
})

var _ = Describe("NewInfo", func() {
	ctx := &hook.Context{SessionID: "sess-1", CWD: "/repo"}
	now := time.Unix(1700000123, 0)

	It("collects terminal identifiers from the environment", func() {
		env := map[string]string{
			"PPID":             "777",
			"TERM_SESSION_ID":  "w0t0p0",
			"ITERM_SESSION_ID": "iterm-1",
			"TMUX":             "/tmp/tmux-1000/default,123,0",
			"TMUX_PANE":        "%5",
		}

		info := session.NewInfo(ctx, func(k string) string { return env[k] }, now)

		Expect(info).To(Equal(&session.Info{
			SessionID:    "sess-1",
			TerminalPID:  "777",
			TermSession:  "w0t0p0",
			ITermSession: "iterm-1",
			Tmux:         "/tmp/tmux-1000/default,123,0",
			TmuxPane:     "%5",
			CWD:          "/repo",
			Timestamp:    1700000123,
		}))
		Expect(info.InTmux()).To(BeTrue())
	})

	It("falls back to the parent pid when PPID is not exported", func() {
		info := session.NewInfo(ctx, func(string) string { return "" }, now)

		Expect(info.TerminalPID).To(Equal(strconv.Itoa(os.Getppid())))
		Expect(info.InTmux()).To(BeFalse())
	})
})
