package executor_test

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/nwdi-cpd/internal/executor"
)

func TestParseAntVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{output: "Apache Ant(TM) version 1.10.14 compiled on August 16 2023", want: "1.10.14"},
		{output: "Apache Ant version 1.7.1 compiled on June 27 2008", want: "1.7.1"},
		{output: "Apache Ant(TM) version 1.9 compiled", want: "1.9.0"},
		{output: "ant: command not found", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			got, err := executor.ParseAntVersion(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAntVersion: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCheckAntVersion_Constraints(t *testing.T) {
	runner := &mockCommandRunner{outputs: map[string]string{
		"ant -version": "Apache Ant(TM) version 1.10.14 compiled on August 16 2023",
	}}

	if _, err := executor.CheckAntVersion(context.Background(), runner, "", "ant", ">= 1.8, < 2"); err != nil {
		t.Fatalf("expected constraint to pass: %v", err)
	}

	_, err := executor.CheckAntVersion(context.Background(), runner, "", "ant", "2.0")
	var versionErr *executor.VersionError
	if !errors.As(err, &versionErr) {
		t.Fatalf("expected VersionError, got %v", err)
	}
	if versionErr.Found != "1.10.14" {
		t.Fatalf("expected found version 1.10.14, got %s", versionErr.Found)
	}

	if _, err := executor.CheckAntVersion(context.Background(), runner, "", "ant", "not a version"); !executor.IsVersionError(err) {
		t.Fatalf("expected VersionError for bad constraint, got %v", err)
	}
}

func TestCommandRunner_Run(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	runner := executor.NewCommandRunner()
	res, err := runner.Run(context.Background(), t.TempDir(), executor.Command{
		Name: "sh",
		Args: []string{"-c", "echo $ANT_OPTS"},
	}, map[string]string{"ANT_OPTS": "-Xmx1024m"}, time.Minute)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Output != "-Xmx1024m" {
		t.Fatalf("unexpected output %q", res.Output)
	}

	res, err = runner.Run(context.Background(), "", executor.Command{
		Name: "sh",
		Args: []string{"-c", "echo BUILD FAILED; exit 3"},
	}, nil, time.Minute)
	var cmdErr *executor.CommandExecutionError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandExecutionError, got %v", err)
	}
	if cmdErr.ExitCode != 3 || res.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d/%d", cmdErr.ExitCode, res.ExitCode)
	}
	if !strings.Contains(cmdErr.Output, "BUILD FAILED") {
		t.Fatalf("expected output in error, got %q", cmdErr.Output)
	}
}

func TestCommandRunner_EmptyCommand(t *testing.T) {
	_, err := executor.NewCommandRunner().Run(context.Background(), "", executor.Command{}, nil, 0)
	if !errors.Is(err, executor.ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
}
