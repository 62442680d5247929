package settings

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/guisettings/internal/pairlist"
	"github.com/spf13/afero"
)

const testDir = "/GuiConfigs"

var (
	entryBool   = Entry{Group: GroupGameList, Name: "sortAsc", Default: true}
	entryInt    = Entry{Group: GroupGameList, Name: "sortCol", Default: 1}
	entryUint   = Entry{Group: GroupLogger, Name: "level", Default: uint(4)}
	entryFloat  = Entry{Group: GroupGameList, Name: "textFactor", Default: 2.0}
	entryString = Entry{Group: GroupMeta, Name: "currentStylesheet", Default: "default"}
	entryBytes  = Entry{Group: GroupMainWindow, Name: "geometry", Default: []byte(nil)}
	entryPairs  = Entry{Group: GroupMainWindow, Name: "recentGamesNames", Default: pairlist.List(nil)}
	entryCustom = Entry{Group: "Custom", Name: "note", Default: ""}
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openMem(t *testing.T, fs afero.Fs, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithFs(fs), WithLogger(quietLogger())}, opts...)
	return Open(testDir, opts...)
}

func writeMemFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	if err := fs.MkdirAll(testDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, filepath.Join(testDir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGet_FreshStoreReturnsDefaults(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())

	if got := s.Get(entryBool).Bool(); got != true {
		t.Errorf("bool default = %v, want true", got)
	}
	if got := s.Get(entryInt).Int(); got != 1 {
		t.Errorf("int default = %d, want 1", got)
	}
	if got := s.Get(entryUint).Uint(); got != 4 {
		t.Errorf("uint default = %d, want 4", got)
	}
	if got := s.Get(entryFloat).Float(); got != 2.0 {
		t.Errorf("float default = %v, want 2.0", got)
	}
	if got := s.Get(entryString).String(); got != "default" {
		t.Errorf("string default = %q, want default", got)
	}
	if got := s.Get(entryBytes).Bytes(); got != nil {
		t.Errorf("bytes default = %v, want nil", got)
	}
	if got := s.Get(entryPairs).Pairs(); got != nil {
		t.Errorf("pairs default = %v, want nil", got)
	}
	if s.Get(entryBool).IsSet() {
		t.Error("fresh entry should not be set")
	}
}

func TestSetGet_ReadAfterWrite(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())

	s.Set(entryBool, false)
	s.Set(entryInt, -3)
	s.Set(entryUint, uint(7))
	s.Set(entryFloat, 0.09)
	s.Set(entryString, "darkmode")
	s.Set(entryBytes, []byte{0x00, 0x01, 0xfe})
	s.Set(entryPairs, pairlist.Of("/games/a", "A", "/games/b", ""))

	if got := s.Get(entryBool).Bool(); got != false {
		t.Errorf("bool = %v, want false", got)
	}
	if got := s.Get(entryInt).Int(); got != -3 {
		t.Errorf("int = %d, want -3", got)
	}
	if got := s.Get(entryUint).Uint(); got != 7 {
		t.Errorf("uint = %d, want 7", got)
	}
	if got := s.Get(entryFloat).Float(); got != 0.09 {
		t.Errorf("float = %v, want 0.09", got)
	}
	if got := s.Get(entryString).String(); got != "darkmode" {
		t.Errorf("string = %q, want darkmode", got)
	}
	if got := s.Get(entryBytes).Bytes(); string(got) != "\x00\x01\xfe" {
		t.Errorf("bytes = %x, want 0001fe", got)
	}
	if got := s.Get(entryPairs).Pairs(); !got.Equal(pairlist.Of("/games/a", "A", "/games/b", "")) {
		t.Errorf("pairs = %v", got)
	}
	if !s.Dirty() {
		t.Error("store should be dirty after Set")
	}
}

func TestSet_NamedIntegerStoredByNumber(t *testing.T) {
	type level uint
	s := openMem(t, afero.NewMemMapFs())
	s.Set(entryUint, level(6))
	if raw := s.Get(entryUint).Raw(); raw != "6" {
		t.Errorf("raw = %q, want 6", raw)
	}
}

func TestValue_MalformedFallsBackToDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeMemFile(t, fs, "CurrentSettings.ini", `[GameList]
sortAsc = maybe
sortCol = twelve
textFactor = wide

[Logger]
level = -1

[main_window]
geometry = @ByteArray(!!!not-base64!!!)
recentGamesNames = @ByteArray(AAAA)
`)
	s := openMem(t, fs)

	if got := s.Get(entryBool).Bool(); got != true {
		t.Errorf("bool = %v, want default true", got)
	}
	if got := s.Get(entryInt).Int(); got != 1 {
		t.Errorf("int = %d, want default 1", got)
	}
	if got := s.Get(entryFloat).Float(); got != 2.0 {
		t.Errorf("float = %v, want default 2.0", got)
	}
	if got := s.Get(entryUint).Uint(); got != 4 {
		t.Errorf("uint = %d, want default 4", got)
	}
	if got := s.Get(entryBytes).Bytes(); got != nil {
		t.Errorf("bytes = %v, want nil", got)
	}
	if got := s.Get(entryPairs).Pairs(); got != nil {
		t.Errorf("pairs = %v, want empty", got)
	}
}

func TestString_AtPrefixEscaped(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())
	s.Set(entryCustom, "@ByteArray(AAAA)")

	if raw := s.Get(entryCustom).Raw(); raw != "@@ByteArray(AAAA)" {
		t.Errorf("raw = %q, want escaped", raw)
	}
	if got := s.Get(entryCustom).String(); got != "@ByteArray(AAAA)" {
		t.Errorf("String = %q, want original text", got)
	}
}

func TestSync_PersistsAcrossReopen(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := openMem(t, fs)
	s.Set(entryString, "value; with # comment chars")
	s.Set(entryCustom, "  padded  ")
	s.Set(entryPairs, pairlist.Of("k", "v"))
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Dirty() {
		t.Error("store should be clean after Close")
	}

	reopened := openMem(t, fs)
	if got := reopened.Get(entryString).String(); got != "value; with # comment chars" {
		t.Errorf("string = %q", got)
	}
	if got := reopened.Get(entryCustom).String(); got != "  padded  " {
		t.Errorf("padded string = %q", got)
	}
	if got := reopened.Get(entryPairs).Pairs(); !got.Equal(pairlist.Of("k", "v")) {
		t.Errorf("pairs = %v", got)
	}
	if got := reopened.Get(VersionEntry).String(); got != SchemaVersion {
		t.Errorf("version stamp = %q, want %s", got, SchemaVersion)
	}
}

func TestSync_CleanStoreWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := openMem(t, fs)
	if err := s.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if ok, _ := afero.Exists(fs, s.Path()); ok {
		t.Error("clean store should not create its file")
	}
}

func TestSync_RawValuesSurviveReopen(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain", "plain text"},
		{"empty", ""},
		{"double quoted", `"quoted"`},
		{"leading quote only", `"open`},
		{"single quoted", `'single'`},
		{"windows dir", `C:\games\`},
		{"double backslash", `trailing\\`},
		{"triple quotes", `"""triple"""`},
		{"backtick", "run `cmd` now"},
		{"leading backtick", "`x`"},
		{"newline", "line1\nline2"},
		{"tab", "a\tb"},
		{"comment chars", "a;b#c"},
		{"leading comment char", "#not a comment"},
		{"padded", "  padded  "},
		{"escaped quote inside", `say \"hi\"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			s := openMem(t, fs)
			s.SetRaw("Custom/value", tt.raw)
			s.SetRaw("Custom/kept", "neighbour")
			if err := s.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			reopened := openMem(t, fs)
			if got := reopened.GetPath("Custom/value", nil).Raw(); got != tt.raw {
				t.Errorf("value = %q, want %q", got, tt.raw)
			}
			if got := reopened.GetPath("Custom/kept", nil).Raw(); got != "neighbour" {
				t.Errorf("neighbouring key = %q, want neighbour", got)
			}
		})
	}
}

func TestSync_PlainValuesStoredVerbatim(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := openMem(t, fs)
	s.SetRaw("Custom/path", `C:\games`)
	s.SetRaw("Custom/quoted", `"x"`)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := afero.ReadFile(fs, s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `path = C:\games`) {
		t.Errorf("plain value should be written as-is:\n%s", data)
	}
	if !strings.Contains(string(data), `quoted = "\"x\""`) {
		t.Errorf("quoted value should be escaped:\n%s", data)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		path  string
		valid bool
	}{
		{"Custom/note", true},
		{"rootKey", true},
		{"main_window/recentGamesNames", true},
		{"Custom/with space", true},
		{"Custom/a;b", true},
		{"Custom/", false},
		{"", false},
		{"Custom/#x", false},
		{"Custom/;x", false},
		{"Custom/[x]", false},
		{"Custom/ lead", false},
		{"Custom/trail ", false},
		{"Custom/a=b", false},
		{"Custom/a:b", false},
		{`Custom/a"b`, false},
		{"Custom/a`b", false},
		{"Custom/a\nb", false},
		{" Custom/x", false},
		{"Cus]tom/x", false},
		{"DEFAULT/x", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidateKey(tt.path)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateKey(%q) = %v, valid=%v", tt.path, err, tt.valid)
			}
			if err != nil && !errors.Is(err, ErrInvalidKey) {
				t.Errorf("error %v does not wrap ErrInvalidKey", err)
			}
		})
	}
}

func TestSetPath_InvalidKeysDropped(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := openMem(t, fs)
	s.SetPath("Custom/#x", "lost")
	s.SetRaw("Custom/[x]", "lost")
	s.SetPath("Custom/ sp", "lost")
	if s.Dirty() {
		t.Error("rejected keys should not dirty the store")
	}

	s.SetPath("Custom/ok", "kept")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reopened := openMem(t, fs)
	for _, path := range []string{"Custom/#x", "Custom/[x]", "Custom/ sp"} {
		if reopened.Contains(path) {
			t.Errorf("%q should have been dropped", path)
		}
	}
	keys := reopened.Keys()
	for _, k := range keys {
		if strings.HasPrefix(k, "Custom/") && k != "Custom/ok" {
			t.Errorf("unexpected key %q in %v", k, keys)
		}
	}
	if got := reopened.GetPath("Custom/ok", "").String(); got != "kept" {
		t.Errorf("Custom/ok = %q, want kept", got)
	}
}

func TestSync_ReadOnlyFsReturnsError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s := openMem(t, fs)
	s.Set(entryBool, false)
	if err := s.Sync(); err == nil {
		t.Fatal("expected error on read-only filesystem")
	}
	// The in-memory value is still served.
	if s.Get(entryBool).Bool() {
		t.Error("value lost after failed sync")
	}
}

func TestRemove(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())
	s.Set(entryBool, false)
	s.Set(entryInt, 5)
	s.SetPath("GameList/sub/deep", "x")

	s.Remove(entryBool.Path())
	if s.Contains(entryBool.Path()) {
		t.Error("key should be removed")
	}
	if !s.Contains(entryInt.Path()) {
		t.Error("sibling key should survive")
	}

	s.Remove(GroupGameList)
	for _, k := range s.Keys() {
		if strings.HasPrefix(k, GroupGameList+"/") {
			t.Errorf("key %s should be removed with its group", k)
		}
	}
}

func TestKeys_Sorted(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())
	s.Set(entryString, "x")
	s.Set(entryBool, false)
	s.SetPath("toplevel", "1")

	want := []string{"GameList/sortAsc", "Meta/currentStylesheet", "Meta/version", "toplevel"}
	got := s.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Keys = %v, want %v", got, want)
	}
}

func TestReset_PartialKeepsUnprotectedGroups(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())
	s.Set(entryBool, false)      // GameList
	s.Set(entryUint, uint(2))    // Logger
	s.Set(entryBytes, []byte{1}) // main_window
	s.SetPath("main_window/dock/state", "1")
	s.Set(entryString, "dark") // Meta
	s.Set(entryCustom, "keep") // Custom

	s.Reset(false)

	for _, e := range []Entry{entryBool, entryUint, entryBytes} {
		if s.Contains(e.Path()) {
			t.Errorf("%s should be removed", e.Path())
		}
	}
	if s.Contains("main_window/dock/state") {
		t.Error("nested group under main_window should be removed")
	}
	if got := s.Get(entryString).String(); got != "dark" {
		t.Errorf("meta entry = %q, want dark", got)
	}
	if got := s.Get(entryCustom).String(); got != "keep" {
		t.Errorf("custom entry = %q, want keep", got)
	}
}

func TestReset_AllClearsEverything(t *testing.T) {
	s := openMem(t, afero.NewMemMapFs())
	s.Set(entryBool, false)
	s.Set(entryString, "dark")
	s.Set(entryCustom, "x")

	s.Reset(true)

	if keys := s.Keys(); len(keys) != 0 {
		t.Errorf("expected empty store, got %v", keys)
	}
	if got := s.Get(entryString).String(); got != "default" {
		t.Errorf("entry after reset = %q, want default", got)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"speedrun", true},
		{"My Profile", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../escape", false},
		{`dir\name`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateName(%q) = %v, valid=%v", tt.name, err, tt.valid)
			}
		})
	}
}

func TestOpen_OsFs(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir, WithLogger(quietLogger()))
	s.Set(entryCustom, "on disk")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "CurrentSettings.ini"))
	if err != nil {
		t.Fatalf("reading settings file: %v", err)
	}
	if !strings.Contains(string(data), "[Custom]") {
		t.Errorf("expected [Custom] section, got:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "CurrentSettings.ini.tmp")); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}
}
