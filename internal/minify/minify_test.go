package minify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStageMissingAnchor(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "vimrc"), []byte("set number\n"), 0644); err != nil {
		t.Fatalf("Failed to write vimrc: %v", err)
	}

	// Route temp allocation into a private directory so we can verify
	// the failure happens before any staging resource exists.
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	_, err := Stage(src)
	if err == nil {
		t.Fatal("Stage() expected error for missing anchor, got nil")
	}

	var missing *MissingAnchorError
	if !errors.As(err, &missing) {
		t.Errorf("Stage() error type = %T, want *MissingAnchorError", err)
	}
	if missing.Dir != src {
		t.Errorf("MissingAnchorError.Dir = %v, want %v", missing.Dir, src)
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("Failed to read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Stage() left %d temp entries behind before anchor check", len(entries))
	}
}

func TestStageMinifiesAnchor(t *testing.T) {
	src := t.TempDir()
	content := "# one\n# two\n# three\nexport EDITOR=vim\n"
	if err := os.WriteFile(filepath.Join(src, "bashrc"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write bashrc: %v", err)
	}

	stage, err := Stage(src)
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	defer os.RemoveAll(stage)

	staged, err := os.ReadFile(filepath.Join(stage, "bashrc"))
	if err != nil {
		t.Fatalf("Failed to read staged bashrc: %v", err)
	}
	if string(staged) != "export EDITOR=vim\n" {
		t.Errorf("staged bashrc = %q, want %q", string(staged), "export EDITOR=vim\n")
	}
}

func TestStageDereferencesSymlink(t *testing.T) {
	src := t.TempDir()
	target := t.TempDir()

	if err := os.WriteFile(filepath.Join(src, "bashrc"), []byte("alias ll='ls -l'\n"), 0644); err != nil {
		t.Fatalf("Failed to write bashrc: %v", err)
	}
	if err := os.WriteFile(filepath.Join(target, "real"), []byte("set -o vi\n"), 0644); err != nil {
		t.Fatalf("Failed to write link target: %v", err)
	}
	if err := os.Symlink(filepath.Join(target, "real"), filepath.Join(src, "linked")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	stage, err := Stage(src)
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	defer os.RemoveAll(stage)

	info, err := os.Lstat(filepath.Join(stage, "linked"))
	if err != nil {
		t.Fatalf("Failed to lstat staged file: %v", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Error("staged copy still contains a symlink; want real file content")
	}

	data, err := os.ReadFile(filepath.Join(stage, "linked"))
	if err != nil {
		t.Fatalf("Failed to read staged file: %v", err)
	}
	if string(data) != "set -o vi\n" {
		t.Errorf("staged symlink content = %q, want %q", string(data), "set -o vi\n")
	}
}

func TestStageKeepsExecutableBits(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "bashrc"), []byte("true\n"), 0644); err != nil {
		t.Fatalf("Failed to write bashrc: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(src, "bin"), 0755); err != nil {
		t.Fatalf("Failed to create bin: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "bin", "tool"), []byte("#!/bin/sh\necho ok\n"), 0755); err != nil {
		t.Fatalf("Failed to write tool: %v", err)
	}

	stage, err := Stage(src)
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	defer os.RemoveAll(stage)

	info, err := os.Stat(filepath.Join(stage, "bin", "tool"))
	if err != nil {
		t.Fatalf("Failed to stat staged tool: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("staged tool mode = %v, want owner-executable", info.Mode().Perm())
	}
}

func TestFilePreservesShebang(t *testing.T) {
	content := "#!/bin/bash\n# comment\necho hi\n"
	got := string(File("script.sh", []byte(content)))
	want := "#!/bin/bash\necho hi\n"
	if got != want {
		t.Errorf("File() = %q, want %q", got, want)
	}
}

func TestFileStripsTrailingComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing", "echo hi # greet\n", "echo hi\n"},
		{"tab trailing", "echo hi\t# greet\n", "echo hi\n"},
		{"no space after hash", "echo ${#array}\n", "echo ${#array}\n"},
		{"full line", "  # note\nls\n", "ls\n"},
		{"blank lines dropped", "\n\nls\n\n", "ls\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(File("bashrc", []byte(tt.in)))
			if got != tt.want {
				t.Errorf("File(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileVimComments(t *testing.T) {
	content := "\" full comment\nset number \" show numbers\nset list\n"
	got := string(File("vimrc", []byte(content)))
	want := "set number\nset list\n"
	if got != want {
		t.Errorf("File() = %q, want %q", got, want)
	}
}

func TestFileIdempotent(t *testing.T) {
	content := "# c\nexport A=1 # trailing\n\nset -o vi\n"
	once := File("bashrc", []byte(content))
	twice := File("bashrc", once)
	if string(once) != string(twice) {
		t.Errorf("second pass changed content: %q -> %q", string(once), string(twice))
	}
}

func TestFileBinaryUntouched(t *testing.T) {
	data := []byte{0x7f, 'E', 'L', 'F', 0x00, '#', ' ', 'x'}
	got := File("tool", data)
	if string(got) != string(data) {
		t.Error("binary content was modified; want verbatim copy")
	}
}
