package installer_test

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vocal-dev/vocal/internal/installer"
	"github.com/vocal-dev/vocal/internal/xdg"
	"github.com/vocal-dev/vocal/pkg/hook"
)

func readSettings(path string) map[string]any {
	data, err := os.ReadFile(path)
	Expect(err).NotTo(HaveOccurred())

	var raw map[string]any
	Expect(json.Unmarshal(data, &raw)).To(Succeed())

	return raw
}

func eventEntries(raw map[string]any, event string) []any {
	hooks, ok := raw["hooks"].(map[string]any)
	Expect(ok).To(BeTrue())

	list, _ := hooks[event].([]any)

	return list
}

var _ = Describe("Installer", func() {
	var (
		dir  string
		path string
		inst *installer.Installer
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		path = filepath.Join(dir, ".claude", "settings.json")
		inst = installer.New("/usr/local/bin/vocal", nil)
	})

	Describe("Install", func() {
		It("creates settings with all four events", func() {
			result, err := inst.Install(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Added).To(Equal([]string{"PreToolUse", "PostToolUse", "Stop", "UserPromptSubmit"}))

			raw := readSettings(path)

			pre := eventEntries(raw, "PreToolUse")
			Expect(pre).To(HaveLen(1))
			Expect(pre[0]).To(HaveKeyWithValue("matcher",
				"Read|Glob|Grep|LS|Edit|Write|MultiEdit|NotebookEdit|Bash|Task|WebFetch|WebSearch"))
			Expect(pre[0].(map[string]any)["hooks"]).To(ConsistOf(And(
				HaveKeyWithValue("type", "command"),
				HaveKeyWithValue("command", "/usr/local/bin/vocal hook pre-tool-use"),
				HaveKeyWithValue("timeout", BeNumerically("==", 30)),
			)))

			stop := eventEntries(raw, "Stop")
			Expect(stop[0]).NotTo(HaveKey("matcher"))
			Expect(stop[0].(map[string]any)["hooks"]).To(ConsistOf(
				HaveKeyWithValue("timeout", BeNumerically("==", 10)),
			))
		})

		It("is idempotent", func() {
			_, err := inst.Install(path)
			Expect(err).NotTo(HaveOccurred())

			result, err := inst.Install(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Changed()).To(BeFalse())
			Expect(result.Present).To(HaveLen(4))

			Expect(eventEntries(readSettings(path), "PreToolUse")).To(HaveLen(1))
		})

		It("preserves unrelated settings and hooks and keeps a backup", func() {
			Expect(os.MkdirAll(filepath.Dir(path), 0o700)).To(Succeed())
			Expect(os.WriteFile(path, []byte(`{
				"model": "opus",
				"hooks": {
					"PreToolUse": [{"matcher": "Bash", "hooks": [{"type": "command", "command": "other-tool check"}]}],
					"Notification": [{"hooks": [{"type": "command", "command": "notify"}]}]
				}
			}`), 0o600)).To(Succeed())

			_, err := inst.Install(path)
			Expect(err).NotTo(HaveOccurred())

			raw := readSettings(path)
			Expect(raw).To(HaveKeyWithValue("model", "opus"))
			Expect(eventEntries(raw, "PreToolUse")).To(HaveLen(2))
			Expect(eventEntries(raw, "Notification")).To(HaveLen(1))

			backups, err := filepath.Glob(path + ".backup.*")
			Expect(err).NotTo(HaveOccurred())
			Expect(backups).To(HaveLen(1))
		})

		It("recognizes an install from another location", func() {
			_, err := installer.New("/opt/vocal/bin/vocal", nil).Install(path)
			Expect(err).NotTo(HaveOccurred())

			result, err := inst.Install(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Added).To(BeEmpty())
		})

		It("rejects malformed settings", func() {
			Expect(os.MkdirAll(filepath.Dir(path), 0o700)).To(Succeed())
			Expect(os.WriteFile(path, []byte("[1,2"), 0o600)).To(Succeed())

			_, err := inst.Install(path)
			Expect(err).To(MatchError(installer.ErrInvalidSettings))
		})
	})

	Describe("Uninstall", func() {
		It("removes only this binary's commands", func() {
			Expect(os.MkdirAll(filepath.Dir(path), 0o700)).To(Succeed())
			Expect(os.WriteFile(path, []byte(`{
				"hooks": {
					"PreToolUse": [{"matcher": "Bash", "hooks": [
						{"type": "command", "command": "other-tool check"},
						{"type": "command", "command": "/usr/local/bin/vocal hook pre-tool-use"}
					]}]
				}
			}`), 0o600)).To(Succeed())

			_, err := inst.Install(path)
			Expect(err).NotTo(HaveOccurred())

			result, err := inst.Uninstall(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Removed).To(Equal(4))

			raw := readSettings(path)
			pre := eventEntries(raw, "PreToolUse")
			Expect(pre).To(HaveLen(1))
			Expect(pre[0].(map[string]any)["hooks"]).To(ConsistOf(
				HaveKeyWithValue("command", "other-tool check"),
			))
			Expect(raw["hooks"]).NotTo(HaveKey("Stop"))
		})

		It("drops the hooks object once empty", func() {
			_, err := inst.Install(path)
			Expect(err).NotTo(HaveOccurred())

			_, err = inst.Uninstall(path)
			Expect(err).NotTo(HaveOccurred())

			Expect(readSettings(path)).NotTo(HaveKey("hooks"))
		})

		It("is a no-op without settings", func() {
			result, err := inst.Uninstall(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Changed()).To(BeFalse())
			Expect(path).NotTo(BeAnExistingFile())
		})
	})

	Describe("Installed", func() {
		It("lists registered events", func() {
			Expect(inst.Installed(path)).To(BeEmpty())

			_, err := inst.Install(path)
			Expect(err).NotTo(HaveOccurred())

			Expect(inst.Installed(path)).To(HaveLen(4))
		})
	})

	It("builds the hook command", func() {
		Expect(inst.Command(hook.EventTypeUserPromptSubmit)).
			To(Equal("/usr/local/bin/vocal hook user-prompt-submit"))
	})
})

var _ = Describe("ResolveTarget", func() {
	var (
		home  string
		work  string
		paths xdg.PathResolver
	)

	BeforeEach(func() {
		home = GinkgoT().TempDir()
		work = GinkgoT().TempDir()
		paths = xdg.ResolverFor(home)
	})

	It("honors an explicit scope", func() {
		Expect(installer.ResolveTarget(installer.ScopeUser, work, paths).Path).
			To(Equal(filepath.Join(home, ".claude", "settings.json")))
		Expect(installer.ResolveTarget(installer.ScopeProject, work, paths).Path).
			To(Equal(filepath.Join(work, ".claude", "settings.json")))
	})

	It("falls back to user settings outside a project", func() {
		Expect(installer.ResolveTarget(installer.ScopeAuto, work, paths).Scope).To(Equal(installer.ScopeUser))
	})

	DescribeTable("detects a project root",
		func(marker string) {
			Expect(os.WriteFile(filepath.Join(work, marker), nil, 0o600)).To(Succeed())

			Expect(installer.ResolveTarget(installer.ScopeAuto, work, paths).Scope).
				To(Equal(installer.ScopeProject))
		},
		Entry("go module", "go.mod"),
		Entry("node package", "package.json"),
		Entry("cargo crate", "Cargo.toml"),
		Entry("python requirements", "requirements.txt"),
	)

	It("prefers existing project settings", func() {
		Expect(os.MkdirAll(filepath.Join(work, ".claude"), 0o700)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(work, ".claude", "settings.json"), []byte("{}"), 0o600)).To(Succeed())

		Expect(installer.ResolveTarget(installer.ScopeAuto, work, paths).Scope).To(Equal(installer.ScopeProject))
	})
})
