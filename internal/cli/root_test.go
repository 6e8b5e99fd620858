package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/xamlscale/internal/cli"
	"github.com/MacroPower/xamlscale/pkg/xamlerrors"
)

var testDataDir string

func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	testDataDir = filepath.Join(dir, "testdata")
}

func mainXAML(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(testDataDir, "Main.xaml"))
	require.NoError(t, err)

	return string(data)
}

func rescaled(t *testing.T, offsetX, offsetY, rectangle string) string {
	t.Helper()

	return strings.NewReplacer(
		`OffsetX="100"`, `OffsetX="`+offsetX+`"`,
		`OffsetY="50"`, `OffsetY="`+offsetY+`"`,
		`Rectangle="10,20,30,40"`, `Rectangle="`+rectangle+`"`,
	).Replace(mainXAML(t))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

type result struct {
	err    error
	stdout string
	stderr string
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	tc := cli.NewRootCmd("xamlscale", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tc.SetArgs(args)
	tc.SetIn(strings.NewReader(stdin))
	tc.SetOut(stdout)
	tc.SetErr(stderr)

	err := tc.Execute()

	return result{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRescaleFileCmd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(testDataDir, "Main.xaml")
	out := filepath.Join(dir, "Main.150.xaml")

	res := execute(t, "", in, out, "denormalize_to=150")
	require.NoError(t, res.err)
	assert.Equal(t, "Processing '"+in+"' to '"+out+"' with 1.5\n", res.stdout)
	assert.Empty(t, res.stderr)

	assert.Equal(t, rescaled(t, "150", "75", "15, 30, 45, 60"), readFile(t, out))
	assert.Equal(t, mainXAML(t), readFile(t, in), "input is unchanged")
}

func TestRescaleFileCmdInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Main.xaml")
	writeFile(t, path, mainXAML(t))

	res := execute(t, "", path, path, "normalize_from=200")
	require.NoError(t, res.err)

	assert.Equal(t, rescaled(t, "50", "25", "5, 10, 15, 20"), readFile(t, path))
}

func TestRescaleFileCmdParseError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.xaml")
	out := filepath.Join(dir, "out.xaml")
	writeFile(t, in, `<Activity a=b/>`)

	res := execute(t, "", in, out, "normalize_from=200")
	require.ErrorIs(t, res.err, xamlerrors.ErrParse)

	_, err := os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRescaleCmdArgs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Main.xaml")
	writeFile(t, file, mainXAML(t))

	tcs := map[string]struct {
		wantErr   error
		args      []string
		wantUsage bool
	}{
		"no arguments": {
			args:      []string{},
			wantErr:   xamlerrors.ErrUsage,
			wantUsage: true,
		},
		"one argument": {
			args:      []string{dir},
			wantErr:   xamlerrors.ErrUsage,
			wantUsage: true,
		},
		"four arguments": {
			args:      []string{file, file, "normalize_from=200", "extra"},
			wantErr:   xamlerrors.ErrUsage,
			wantUsage: true,
		},
		"missing folder": {
			args:      []string{filepath.Join(dir, "missing"), "normalize_from=200"},
			wantErr:   xamlerrors.ErrUsage,
			wantUsage: true,
		},
		"file given as folder": {
			args:      []string{file, "normalize_from=200"},
			wantErr:   xamlerrors.ErrUsage,
			wantUsage: true,
		},
		"unknown operation": {
			args:      []string{file, file, "zoom=200"},
			wantErr:   xamlerrors.ErrUsage,
			wantUsage: true,
		},
		"malformed operation": {
			args:      []string{dir, "normalize_from"},
			wantErr:   xamlerrors.ErrUsage,
			wantUsage: true,
		},
		"scaling below range": {
			args:    []string{file, file, "normalize_from=99"},
			wantErr: xamlerrors.ErrInvalidScaling,
		},
		"scaling above range": {
			args:    []string{dir, "denormalize_to=501"},
			wantErr: xamlerrors.ErrInvalidScaling,
		},
		"scaling overflow": {
			args:    []string{file, file, "denormalize_to=99999999999"},
			wantErr: xamlerrors.ErrInvalidScaling,
		},
		"missing input file": {
			args:      []string{filepath.Join(dir, "missing.xaml"), file, "normalize_from=200"},
			wantErr:   xamlerrors.ErrUsage,
			wantUsage: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			res := execute(t, "yes\n", tc.args...)
			require.ErrorIs(t, res.err, tc.wantErr)

			if tc.wantUsage {
				assert.Contains(t, res.stdout, "Usage:")
				assert.Contains(t, res.stdout, "(normalize_from|denormalize_to)=<scaling>")
			} else {
				assert.NotContains(t, res.stdout, "Usage:")
			}

			assert.Equal(t, mainXAML(t), readFile(t, file), "no file is modified")
		})
	}
}

func TestRescaleFolderCmd(t *testing.T) {
	tcs := map[string]struct {
		stdin       string
		args        []string
		wantChanged bool
	}{
		"confirmed": {
			stdin:       "yes\n",
			wantChanged: true,
		},
		"confirmed in upper case": {
			stdin:       "YES\n",
			wantChanged: true,
		},
		"declined": {
			stdin: "no\n",
		},
		"no answer": {
			stdin: "",
		},
		"confirmation skipped": {
			args:        []string{"--yes"},
			wantChanged: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, "Main.xaml"), mainXAML(t))
			writeFile(t, filepath.Join(root, "Flows", "Login.xaml"), mainXAML(t))
			writeFile(t, filepath.Join(root, "project.json"), `{"main":"Main.xaml"}`)

			args := append([]string{root, "denormalize_to=150"}, tc.args...)
			res := execute(t, tc.stdin, args...)
			require.NoError(t, res.err)

			want := mainXAML(t)
			if tc.wantChanged {
				want = rescaled(t, "150", "75", "15, 30, 45, 60")
				assert.Contains(t, res.stdout, "Rescaled 2 files (6 attributes)")
			} else {
				assert.Contains(t, res.stdout, "Cancelled, no files were modified.")
			}

			if tc.args == nil {
				assert.Contains(t, res.stdout, "Folder processing will modify all the XAML files in the given path.")
			} else {
				assert.NotContains(t, res.stdout, "Folder processing")
			}

			assert.Equal(t, want, readFile(t, filepath.Join(root, "Main.xaml")))
			assert.Equal(t, want, readFile(t, filepath.Join(root, "Flows", "Login.xaml")))
			assert.JSONEq(t, `{"main":"Main.xaml"}`, readFile(t, filepath.Join(root, "project.json")))
		})
	}
}

func TestRescaleFolderCmdPartialFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.xaml"), mainXAML(t))
	writeFile(t, filepath.Join(root, "B.xaml"), `<Activity a=b/>`)
	writeFile(t, filepath.Join(root, "sub", "C.xaml"), mainXAML(t))

	res := execute(t, "yes\n", root, "normalize_from=200")
	require.ErrorIs(t, res.err, xamlerrors.ErrPartialFailure)

	assert.Contains(t, res.stdout, "Processing '"+filepath.Join(root, "B.xaml")+"'")
	assert.Contains(t, res.stdout, "parse document")
	assert.Contains(t, res.stdout, "Rescaled 2 files (6 attributes), 1 files and 0 folders failed")

	want := rescaled(t, "50", "25", "5, 10, 15, 20")
	assert.Equal(t, want, readFile(t, filepath.Join(root, "A.xaml")))
	assert.Equal(t, want, readFile(t, filepath.Join(root, "sub", "C.xaml")))
	assert.Equal(t, `<Activity a=b/>`, readFile(t, filepath.Join(root, "B.xaml")))
}

func TestRescaleFolderCmdConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Main.xml"), mainXAML(t))
	writeFile(t, filepath.Join(root, "Main.xaml"), mainXAML(t))

	res := execute(t, "yes\n", root, "denormalize_to=200", "--config", filepath.Join(testDataDir, "config.yaml"))
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "all the XML files")

	assert.Equal(t, rescaled(t, "200", "100", "20, 40, 60, 80"), readFile(t, filepath.Join(root, "Main.xml")))
	assert.Equal(t, mainXAML(t), readFile(t, filepath.Join(root, "Main.xaml")))
}

func TestRescaleCmdInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(testDataDir, "Main.xaml")
	out := filepath.Join(dir, "out.xaml")

	res := execute(t, "", in, out, "denormalize_to=200", "--config", filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, res.err, xamlerrors.ErrInvalidConfig)

	_, err := os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootCmdArgs(t *testing.T) {
	tcs := map[string]struct {
		wantErr   error
		logLevel  string
		logFormat string
	}{
		"default config": {
			logLevel:  "warn",
			logFormat: "text",
		},
		"json format": {
			logLevel:  "info",
			logFormat: "json",
		},
		"logfmt format": {
			logLevel:  "debug",
			logFormat: "logfmt",
		},
		"invalid log level": {
			logLevel:  "invalid",
			logFormat: "text",
			wantErr:   cli.ErrLogHandlerFailed,
		},
		"invalid log format": {
			logLevel:  "warn",
			logFormat: "invalid",
			wantErr:   cli.ErrLogHandlerFailed,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			res := execute(t, "",
				"--log_level", tc.logLevel,
				"--log_format", tc.logFormat,
				"version",
			)

			if tc.wantErr != nil {
				require.Error(t, res.err)
				assert.ErrorIs(t, res.err, tc.wantErr)
			} else {
				require.NoError(t, res.err)
				assert.Regexp(t, `\d+\.\d+\.\d+`, res.stdout)
			}
		})
	}
}

func TestRootCmdArgPointers(t *testing.T) {
	args := cli.NewRootArgs()

	assert.Empty(t, args.GetLogLevel())
	assert.Empty(t, args.GetLogFormat())
	assert.Empty(t, args.GetConfig())
	assert.False(t, args.GetYes())
}

func TestUsage(t *testing.T) {
	assert.Equal(t, `Usage:
    tool <input_xaml_file_path> <output_xaml_file_path> (normalize_from|denormalize_to)=<scaling>
or:
    tool <folder_path> (normalize_from|denormalize_to)=<scaling>`, cli.Usage("tool"))
}

func TestRescaleCmdPathNamedLikeSubcommand(t *testing.T) {
	for _, sub := range []string{"schema", "version"} {
		t.Run(sub, func(t *testing.T) {
			work := t.TempDir()
			chdir(t, work)

			writeFile(t, filepath.Join(work, sub, "Main.xaml"), mainXAML(t))

			res := execute(t, "", sub, "normalize_from=200", "--yes")
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, "Rescaled 1 files (3 attributes)")

			assert.Equal(t, rescaled(t, "50", "25", "5, 10, 15, 20"),
				readFile(t, filepath.Join(work, sub, "Main.xaml")))
		})
	}
}

func TestRescaleCmdFileNamedLikeSubcommand(t *testing.T) {
	work := t.TempDir()
	chdir(t, work)

	writeFile(t, filepath.Join(work, "schema"), mainXAML(t))

	res := execute(t, "", "schema", "out.xaml", "denormalize_to=150")
	require.NoError(t, res.err)
	assert.Equal(t, "Processing 'schema' to 'out.xaml' with 1.5\n", res.stdout)

	assert.Equal(t, rescaled(t, "150", "75", "15, 30, 45, 60"), readFile(t, filepath.Join(work, "out.xaml")))
}

func TestSubcommandMissingPath(t *testing.T) {
	chdir(t, t.TempDir())

	res := execute(t, "", "schema", "normalize_from=200")
	require.ErrorIs(t, res.err, xamlerrors.ErrUsage)
	assert.Contains(t, res.stdout, "Usage:")
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous one on cleanup (equivalent of testing.T.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
