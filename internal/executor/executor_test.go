package executor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/nwdi-cpd/internal/component"
	"github.com/goliatone/nwdi-cpd/internal/executor"
)

type mockGenerator struct {
	path  string
	write bool
	err   error
	files []string
	calls int
}

func (g *mockGenerator) Execute(_ context.Context, _ []component.Component) error {
	g.calls++
	if g.err != nil {
		return g.err
	}
	if g.write {
		g.files = append(g.files, g.path)
	}
	return nil
}

func (g *mockGenerator) BuildFiles() []string {
	return append([]string{}, g.files...)
}

type runCall struct {
	dir     string
	cmd     executor.Command
	env     map[string]string
	timeout time.Duration
}

type mockCommandRunner struct {
	calls   []runCall
	outputs map[string]string
	errs    map[string]error
}

func (r *mockCommandRunner) Run(_ context.Context, dir string, cmd executor.Command, env map[string]string, timeout time.Duration) (executor.CommandResult, error) {
	r.calls = append(r.calls, runCall{dir: dir, cmd: cmd, env: env, timeout: timeout})
	key := cmd.Name
	if len(cmd.Args) > 0 && cmd.Args[0] == "-version" {
		key += " -version"
	}
	return executor.CommandResult{Command: cmd, Output: r.outputs[key]}, r.errs[key]
}

type mockLogger struct {
	infos  []string
	errors []string
}

func (l *mockLogger) Info(msg string, _ ...any)  { l.infos = append(l.infos, msg) }
func (l *mockLogger) Error(msg string, _ ...any) { l.errors = append(l.errors, msg) }
func (l *mockLogger) Debug(string, ...any)       {}

var sampleComponents = []component.Component{
	{Vendor: "example.com", Name: "dc1", Type: component.TypeJava},
}

func TestExecutor_ExecuteRunsAnt(t *testing.T) {
	gen := &mockGenerator{path: "/work/cpd-build.xml", write: true}
	runner := &mockCommandRunner{outputs: map[string]string{"ant": "BUILD SUCCESSFUL"}}
	logger := &mockLogger{}

	exec, err := executor.New(executor.Options{
		Generator:  gen,
		Runner:     runner,
		Workspace:  "/work",
		ReportPath: "/work/cpd/cpd-result.xml",
		Properties: map[string]string{"cpd.dir": "/opt/pmd/lib", "build.id": "42"},
		Timeout:    time.Minute,
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := exec.Execute(context.Background(), sampleComponents)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Status != executor.StatusCompleted {
		t.Fatalf("expected status %s, got %s (%s)", executor.StatusCompleted, result.Status, result.Reason)
	}
	if result.BuildFile != "/work/cpd-build.xml" || result.ReportPath != "/work/cpd/cpd-result.xml" {
		t.Fatalf("unexpected paths: %+v", result)
	}
	if result.Output != "BUILD SUCCESSFUL" {
		t.Fatalf("unexpected output %q", result.Output)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected one command, got %d", len(runner.calls))
	}
	call := runner.calls[0]
	want := executor.Command{
		Name: "ant",
		Args: []string{"-f", "/work/cpd-build.xml", "-Dbuild.id=42", "-Dcpd.dir=/opt/pmd/lib", "cpd-all"},
	}
	if diff := cmp.Diff(want, call.cmd); diff != "" {
		t.Fatalf("command mismatch (-want +got):\n%s", diff)
	}
	if call.dir != "/work" {
		t.Fatalf("expected dir /work, got %s", call.dir)
	}
	if diff := cmp.Diff(map[string]string{"ANT_OPTS": executor.DefaultJVMOptions}, call.env); diff != "" {
		t.Fatalf("env mismatch (-want +got):\n%s", diff)
	}
	if call.timeout != time.Minute {
		t.Fatalf("expected timeout 1m, got %s", call.timeout)
	}
	if len(logger.infos) == 0 {
		t.Fatal("expected info logs")
	}
}

func TestExecutor_ExecuteSkipsWithoutBuildFile(t *testing.T) {
	gen := &mockGenerator{path: "/work/cpd-build.xml"}
	runner := &mockCommandRunner{}

	exec, err := executor.New(executor.Options{Generator: gen, Runner: runner})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := exec.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Status != executor.StatusSkipped {
		t.Fatalf("expected skipped, got %s", result.Status)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("expected no commands, got %d", len(runner.calls))
	}
}

func TestExecutor_Execute_TableDriven(t *testing.T) {
	genErr := errors.New("disk full")
	antErr := &executor.CommandExecutionError{Command: []string{"ant"}, ExitCode: 1, Err: errors.New("exit status 1")}

	tests := []struct {
		name          string
		gen           *mockGenerator
		runner        *mockCommandRunner
		minVersion    string
		wantStatus    executor.Status
		wantErr       bool
		checkErr      func(error) bool
		wantCommands  int
		wantAntCalled bool
	}{
		{
			name:       "generator failure propagates",
			gen:        &mockGenerator{err: genErr},
			runner:     &mockCommandRunner{},
			wantStatus: executor.StatusFailed,
			wantErr:    true,
			checkErr:   func(err error) bool { return errors.Is(err, genErr) },
		},
		{
			name:         "ant failure propagates unchanged",
			gen:          &mockGenerator{path: "/b.xml", write: true},
			runner:       &mockCommandRunner{errs: map[string]error{"ant": antErr}},
			wantStatus:   executor.StatusFailed,
			wantErr:      true,
			checkErr:     executor.IsCommandError,
			wantCommands: 1,
		},
		{
			name: "version preflight accepts newer ant",
			gen:  &mockGenerator{path: "/b.xml", write: true},
			runner: &mockCommandRunner{outputs: map[string]string{
				"ant -version": "Apache Ant(TM) version 1.10.14 compiled on August 16 2023",
			}},
			minVersion:   "1.8",
			wantStatus:   executor.StatusCompleted,
			wantCommands: 2,
		},
		{
			name: "version preflight rejects older ant",
			gen:  &mockGenerator{path: "/b.xml", write: true},
			runner: &mockCommandRunner{outputs: map[string]string{
				"ant -version": "Apache Ant version 1.7.1 compiled on June 27 2008",
			}},
			minVersion:   "1.8",
			wantStatus:   executor.StatusFailed,
			wantErr:      true,
			checkErr:     executor.IsVersionError,
			wantCommands: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, err := executor.New(executor.Options{
				Generator:     tt.gen,
				Runner:        tt.runner,
				MinAntVersion: tt.minVersion,
			})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			result, err := exec.Execute(context.Background(), sampleComponents)
			if tt.wantErr != (err != nil) {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if tt.checkErr != nil && !tt.checkErr(err) {
				t.Fatalf("unexpected error type: %v", err)
			}
			if result.Status != tt.wantStatus {
				t.Fatalf("expected status %s, got %s (%s)", tt.wantStatus, result.Status, result.Reason)
			}
			if len(tt.runner.calls) != tt.wantCommands {
				t.Fatalf("expected %d commands, got %d", tt.wantCommands, len(tt.runner.calls))
			}
		})
	}
}

func TestExecutor_ExecuteCanceled(t *testing.T) {
	gen := &mockGenerator{path: "/b.xml", write: true}
	runner := &mockCommandRunner{errs: map[string]error{"ant": context.Canceled}}

	exec, _ := executor.New(executor.Options{Generator: gen, Runner: runner})
	result, err := exec.Execute(context.Background(), sampleComponents)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Reason == "" {
		t.Fatal("expected a failure reason")
	}
}

func TestNew_RequiresGenerator(t *testing.T) {
	if _, err := executor.New(executor.Options{}); err == nil {
		t.Fatal("expected error without generator")
	}
}
