package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		format string
		want   string
	}{
		{"prog.asm", "raw", "prog.obj"},
		{"prog.asm", "hex", "prog.hex"},
		{"prog", "raw", "prog.obj"},
		{"dir/prog.asm", "raw", "dir/prog.obj"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.input, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}

func TestRunAssemblesFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "add.asm")
	output := filepath.Join(dir, "add.obj")

	source := ".ORIG x3000\nADD R1,R2,R3\n.END\n"
	if err := os.WriteFile(input, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{input, "-o", output, "-f", "raw", "--config", filepath.Join(dir, "none.toml")})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	object, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading object: %v", err)
	}

	want := []byte{0x30, 0x00, 0x12, 0x83}
	if !bytes.Equal(object, want) {
		t.Errorf("object = %#x, want %#x", object, want)
	}
}

func TestRunReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.asm")

	source := ".ORIG x3000\nADD R1,R2,#16\n.END\n"
	if err := os.WriteFile(input, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer

	cmd := newRootCommand()
	cmd.SetArgs([]string{input, "--config", filepath.Join(dir, "none.toml")})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(&stderr)

	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute succeeded on an out-of-range immediate")
	}

	if stderr.Len() == 0 {
		t.Error("no diagnostic text on stderr")
	}

	if _, err := os.Stat(filepath.Join(dir, "bad.obj")); !os.IsNotExist(err) {
		t.Error("object file written despite assembly failure")
	}
}
