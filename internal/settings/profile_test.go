package settings

import (
	"errors"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// countingFs records every filesystem call that could touch a file.
type countingFs struct {
	afero.Fs
	calls int
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.calls++
	return c.Fs.Open(name)
}

func (c *countingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	c.calls++
	return c.Fs.OpenFile(name, flag, perm)
}

func (c *countingFs) Create(name string) (afero.File, error) {
	c.calls++
	return c.Fs.Create(name)
}

func (c *countingFs) Stat(name string) (os.FileInfo, error) {
	c.calls++
	return c.Fs.Stat(name)
}

func (c *countingFs) Rename(oldname, newname string) error {
	c.calls++
	return c.Fs.Rename(oldname, newname)
}

func (c *countingFs) MkdirAll(path string, perm os.FileMode) error {
	c.calls++
	return c.Fs.MkdirAll(path, perm)
}

func TestSwitchToProfile_SelfIsNoOp(t *testing.T) {
	fs := &countingFs{Fs: afero.NewMemMapFs()}
	s := openMem(t, fs)
	s.Set(entryBool, false)
	s.Set(entryCustom, "kept")
	before := snapshot(s)
	fs.calls = 0

	if err := s.SwitchToProfile(s.Name()); err != nil {
		t.Fatalf("SwitchToProfile(self): %v", err)
	}

	if fs.calls != 0 {
		t.Errorf("expected no filesystem calls, got %d", fs.calls)
	}
	if after := snapshot(s); !equalMaps(before, after) {
		t.Errorf("store changed:\nbefore %v\nafter  %v", before, after)
	}
	if !s.Dirty() {
		t.Error("pending changes should still be pending")
	}
}

func TestSwitchToProfile_RestoresBackup(t *testing.T) {
	fs := afero.NewMemMapFs()
	// The profile already holds a key that the live store never had.
	writeMemFile(t, fs, "speedrun.ini", "[Extra]\nonly_in_profile = yes\n")

	s := openMem(t, fs)
	s.Set(entryBool, false)
	s.Set(entryUint, uint(6))
	s.Set(entryCustom, "original")
	s.Set(entryString, "dark") // meta, excluded from the backup
	state := snapshot(s)

	if err := s.BackupTo("speedrun"); err != nil {
		t.Fatalf("BackupTo: %v", err)
	}

	// Diverge from the saved state.
	s.Set(entryBool, true)
	s.Set(entryInt, 9)
	s.Set(entryCustom, "changed")
	s.SetPath("Later/added", "1")

	if err := s.SwitchToProfile("speedrun"); err != nil {
		t.Fatalf("SwitchToProfile: %v", err)
	}

	for key, raw := range state {
		if IsMeta(key) {
			continue
		}
		got, ok := lookup(s.file, key)
		if !ok || got != raw {
			t.Errorf("%s = %q (set=%v), want %q", key, got, ok, raw)
		}
	}
	if s.Contains(entryInt.Path()) {
		t.Error("GameList key added after backup should be cleared by the switch")
	}
	if got := s.GetPath("Extra/only_in_profile", "").String(); got != "yes" {
		t.Errorf("profile-only key = %q, want yes", got)
	}
	if got := s.GetPath("Later/added", "").String(); got != "1" {
		t.Errorf("unprotected key outside the profile = %q, want it kept", got)
	}
	if got := s.Get(CurrentProfileEntry).String(); got != "speedrun" {
		t.Errorf("current profile = %q, want speedrun", got)
	}
	if s.Dirty() {
		t.Error("switch should sync the live store")
	}
}

func TestSwitchToProfile_MissingProfileReadsEmpty(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())
	s.Set(entryBool, false)
	s.Set(entryCustom, "kept")

	if err := s.SwitchToProfile("ghost"); err != nil {
		t.Fatalf("SwitchToProfile: %v", err)
	}
	if s.Contains(entryBool.Path()) {
		t.Error("protected group should be reset")
	}
	if got := s.Get(entryCustom).String(); got != "kept" {
		t.Errorf("custom = %q, want kept", got)
	}
}

func TestSwitchToProfile_InvalidName(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())
	s.Set(entryBool, false)
	if err := s.SwitchToProfile("../etc"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if !s.Contains(entryBool.Path()) {
		t.Error("invalid name must not reset the store")
	}
}

func TestBackupTo_ExcludesMetaAndMerges(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeMemFile(t, fs, "backup.ini", "[Extra]\nold = 1\n\n[GameList]\nsortAsc = true\n")

	s := openMem(t, fs)
	s.Set(entryBool, false)
	s.Set(entryString, "dark")
	if err := s.BackupTo("backup"); err != nil {
		t.Fatalf("BackupTo: %v", err)
	}

	data, err := afero.ReadFile(fs, testDir+"/backup.ini")
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "[Meta]") {
		t.Errorf("backup must not contain meta keys:\n%s", content)
	}
	if !strings.Contains(content, "old") {
		t.Errorf("existing profile keys should be kept:\n%s", content)
	}

	profile := Open(testDir, WithFs(fs), WithLogger(quietLogger()), WithName("backup"))
	if profile.Get(entryBool).Bool() {
		t.Error("backup should hold the live value false")
	}
}

func TestBackupTo_SelfOnlySyncs(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := openMem(t, fs)
	s.Set(entryString, "dark")
	if err := s.BackupTo(s.Name()); err != nil {
		t.Fatalf("BackupTo(self): %v", err)
	}
	reopened := openMem(t, fs)
	if got := reopened.Get(entryString).String(); got != "dark" {
		t.Errorf("meta key lost on self backup: %q", got)
	}
}

func TestSaveCurrentAsProfile(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := openMem(t, fs)
	s.Set(entryCustom, "mine")

	if err := s.SaveCurrentAsProfile("work"); err != nil {
		t.Fatalf("SaveCurrentAsProfile: %v", err)
	}
	if got := s.Get(CurrentProfileEntry).String(); got != "work" {
		t.Errorf("current profile = %q, want work", got)
	}
	if ok, _ := afero.Exists(fs, testDir+"/work.ini"); !ok {
		t.Error("profile file not written")
	}
	if s.Dirty() {
		t.Error("live store should be synced")
	}
}

func TestListProfilesAndStylesheets(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeMemFile(t, fs, "CurrentSettings.ini", "")
	writeMemFile(t, fs, "speedrun.ini", "")
	writeMemFile(t, fs, "dark.qss", "QWidget{}")
	writeMemFile(t, fs, "notes.txt", "")
	writeMemFile(t, fs, "half.ini.tmp", "")
	if err := fs.MkdirAll(testDir+"/nested.ini", 0755); err != nil {
		t.Fatal(err)
	}
	s := openMem(t, fs)

	profiles := s.ListProfiles()
	sort.Strings(profiles)
	if strings.Join(profiles, ",") != "CurrentSettings,speedrun" {
		t.Errorf("ListProfiles = %v", profiles)
	}

	sheets := s.ListStylesheets()
	if len(sheets) != 1 || sheets[0] != "dark" {
		t.Errorf("ListStylesheets = %v", sheets)
	}

	if got := s.StylesheetPath("dark"); got != "/GuiConfigs/dark.qss" {
		t.Errorf("StylesheetPath = %s", got)
	}
}

func TestListProfiles_MissingDirectory(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())
	if got := s.ListProfiles(); len(got) != 0 {
		t.Errorf("expected no profiles, got %v", got)
	}
}

func snapshot(s *Store) map[string]string {
	return allValues(s.file)
}

func equalMaps(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
