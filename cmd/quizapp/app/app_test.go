package app_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/starquake/quizapp/cmd/quizapp/app"
	"github.com/starquake/quizapp/internal/config"
	"github.com/starquake/quizapp/internal/console"
	"github.com/starquake/quizapp/internal/quiz"
	"github.com/starquake/quizapp/internal/session"
	"github.com/starquake/quizapp/internal/testutil"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

type backend struct {
	name string
	vars func(t *testing.T) map[string]string
}

func backends() []backend {
	return []backend{
		{
			name: "sqlite",
			vars: func(t *testing.T) map[string]string {
				t.Helper()

				return map[string]string{
					"STORE_DRIVER": config.StoreDriverSQLite,
					"STORE_PATH":   filepath.Join(t.TempDir(), "quizzes.sqlite"),
					"NO_COLOR":     "1",
				}
			},
		},
		{
			name: "yaml",
			vars: func(t *testing.T) map[string]string {
				t.Helper()

				return map[string]string{
					"STORE_DRIVER": config.StoreDriverYAML,
					"STORE_PATH":   filepath.Join(t.TempDir(), "quizzes.yaml"),
					"NO_COLOR":     "1",
				}
			},
		},
	}
}

// run executes the app once and returns what it wrote to stdout.
func run(t *testing.T, vars map[string]string, stdin []string, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	vars["LOG_LEVEL"] = "debug"
	err := app.Run(t.Context(), args, env(vars), testutil.Input(stdin...), &stdout, testutil.NewTestWriter(t))

	return stdout.String(), err
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	err := app.Run(t.Context(), nil, env(map[string]string{"STORE_DRIVER": "xml"}), testutil.Input(), &bytes.Buffer{}, &stderr)
	if !errors.Is(err, config.ErrUnsupportedStoreDriver) {
		t.Fatalf("Run() error = %v, want %v", err, config.ErrUnsupportedStoreDriver)
	}
	if got, want := stderr.String(), "error parsing config"; !strings.Contains(got, want) {
		t.Errorf("stderr = %q, want substring %q", got, want)
	}
}

func TestRun_FirstRunSeedsDefaultQuiz(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			vars := b.vars(t)

			out, err := run(t, vars, nil, "list")
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got, want := out, "1) "+quiz.DefaultName; !strings.Contains(got, want) {
				t.Errorf("stdout = %q, want substring %q", got, want)
			}
			if _, err = os.Stat(vars["STORE_PATH"]); err != nil {
				t.Errorf("store file not written: %v", err)
			}
		})
	}
}

func TestRun_CreatedQuizSurvivesRestart(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			vars := b.vars(t)

			out, err := run(t, vars, []string{
				console.MenuCreate, "Geo", "1", "Capital of France?", "2", "Paris", "Lyon", "1",
				console.MenuExit,
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got, want := out, `Quiz "Geo" created successfully!`; !strings.Contains(got, want) {
				t.Errorf("stdout = %q, want substring %q", got, want)
			}

			out, err = run(t, vars, []string{"1"}, "play", "Geo")
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got, want := out, "Quiz Over! Your final score: 1/1"; !strings.Contains(got, want) {
				t.Errorf("stdout = %q, want substring %q", got, want)
			}
		})
	}
}

func TestRun_Play(t *testing.T) {
	t.Parallel()

	t.Run("by name", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, backends()[0].vars(t), []string{"2"}, "play", quiz.DefaultName)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got, want := out, "Perfect score!"; !strings.Contains(got, want) {
			t.Errorf("stdout = %q, want substring %q", got, want)
		}
	})

	t.Run("by selection", func(t *testing.T) {
		t.Parallel()

		out, err := run(t, backends()[1].vars(t), []string{"1", ""}, "play")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got, want := out, "No answer selected for this question."; !strings.Contains(got, want) {
			t.Errorf("stdout = %q, want substring %q", got, want)
		}
	})

	t.Run("unknown quiz", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, backends()[0].vars(t), nil, "play", "Nope")
		if !errors.Is(err, session.ErrQuizNotFound) {
			t.Errorf("Run() error = %v, want %v", err, session.ErrQuizNotFound)
		}
	})
}

func TestRun_Delete(t *testing.T) {
	t.Parallel()

	t.Run("default quiz is protected", func(t *testing.T) {
		t.Parallel()
		vars := backends()[1].vars(t)

		out, err := run(t, vars, nil, "delete", quiz.DefaultName)
		if !errors.Is(err, session.ErrDefaultQuizProtected) {
			t.Fatalf("Run() error = %v, want %v", err, session.ErrDefaultQuizProtected)
		}
		if got, want := out, "The default quiz cannot be deleted!"; !strings.Contains(got, want) {
			t.Errorf("stdout = %q, want substring %q", got, want)
		}

		out, err = run(t, vars, nil, "list")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got, want := out, quiz.DefaultName; !strings.Contains(got, want) {
			t.Errorf("stdout = %q, want substring %q", got, want)
		}
	})

	t.Run("created quiz", func(t *testing.T) {
		t.Parallel()
		vars := backends()[0].vars(t)

		_, err := run(t, vars, []string{"Geo", "1", "Capital of France?", "2", "Paris", "Lyon", "1"}, "create")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		out, err := run(t, vars, nil, "delete", "Geo")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got, want := out, "Quiz deleted successfully!"; !strings.Contains(got, want) {
			t.Errorf("stdout = %q, want substring %q", got, want)
		}

		out, err = run(t, vars, nil, "list")
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if strings.Contains(out, "Geo") {
			t.Errorf("stdout = %q, deleted quiz still listed", out)
		}
	})
}

func TestRun_CorruptStorageStartsWithDefaultQuiz(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			vars := b.vars(t)
			if err := os.WriteFile(vars["STORE_PATH"], []byte("this is not a quiz store\x00\x01"), 0o600); err != nil {
				t.Fatalf("failed to write store file: %v", err)
			}

			out, err := run(t, vars, nil, "list")
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got, want := out, "1) "+quiz.DefaultName; !strings.Contains(got, want) {
				t.Errorf("stdout = %q, want substring %q", got, want)
			}
		})
	}
}
