package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/keiko-edu/llm-quiz/internal/config"
	"github.com/keiko-edu/llm-quiz/internal/grader"
	"github.com/keiko-edu/llm-quiz/internal/llm"
	"github.com/keiko-edu/llm-quiz/internal/pipeline"
	"github.com/keiko-edu/llm-quiz/internal/quiz"
	"github.com/keiko-edu/llm-quiz/internal/report"
	"github.com/keiko-edu/llm-quiz/internal/store"
	"github.com/keiko-edu/llm-quiz/internal/ui"
)

// runGrade executes one full grading run: resolve config, load the quiz,
// build both model identities, drive the pipeline, and print the report
// with the machine-readable marker on the last line.
func runGrade(cmd *cobra.Command, quizPath string) error {
	_ = godotenv.Load()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	qz, err := quiz.Load(quizPath)
	if err != nil {
		var malformed *quiz.ErrMalformed
		if errors.As(err, &malformed) {
			return err
		}
		return fmt.Errorf("load quiz: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	useUI, _ := cmd.Flags().GetBool("ui")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runID := uuid.NewString()
	ctx = llm.WithRunID(ctx, runID)

	// Event logging is best effort: a broken log never blocks grading.
	var eventRepo store.EventRepo
	dbPath, err := resolveEventDBPath(cmd, cfg.EventDB)
	if err == nil {
		st, openErr := store.Open(dbPath)
		if openErr != nil {
			err = openErr
		} else {
			defer st.Close()
			eventRepo = st.EventRepo()
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: model-call log unavailable:", err)
	}

	quizModel, err := llm.NewProvider(ctx, cfg.QuizModelConfig(), eventRepo)
	if err != nil {
		return fmt.Errorf("quiz model: %w", err)
	}
	evaluator, err := llm.NewProvider(ctx, cfg.EvaluatorModelConfig(), eventRepo)
	if err != nil {
		return fmt.Errorf("evaluator model: %w", err)
	}
	if err := probeEndpoint(ctx, quizModel); err != nil {
		return fmt.Errorf("model endpoint unreachable: %w", err)
	}

	courseContext := config.FetchCourseContext(ctx, http.DefaultClient, cfg.ContextURLs)

	g := grader.New(quizModel, evaluator, grader.DefaultConfig())

	var res pipeline.QuizResult
	if useUI {
		res, err = runWithUI(ctx, stop, g, qz, courseContext, cfg.Concurrency)
	} else {
		res = runPlain(ctx, g, qz, courseContext, cfg.Concurrency, verbose)
	}
	if err != nil {
		return err
	}

	fmt.Print(report.Render(res, verbose))

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		doc := report.NewDocument(runID, res)
		if err := report.WriteJSON(out, doc); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: write report:", err)
		} else {
			fmt.Fprintln(os.Stderr, "Report written to", out)
		}
	}

	// The marker is the last line of output so graders can scrape it.
	fmt.Println(report.Marker(res))
	return nil
}

func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	flags := config.Overrides{}
	flags.Provider, _ = cmd.Flags().GetString("provider")
	flags.BaseURL, _ = cmd.Flags().GetString("base-url")
	flags.APIKey, _ = cmd.Flags().GetString("api-key")
	flags.QuizModel, _ = cmd.Flags().GetString("quiz-model")
	flags.EvaluatorModel, _ = cmd.Flags().GetString("evaluator-model")
	flags.ContextURLs, _ = cmd.Flags().GetStringArray("context-url")
	flags.Concurrency, _ = cmd.Flags().GetInt("concurrency")

	return config.Resolve(path, flags)
}

// probeEndpoint checks reachability with one cheap call before any
// question processing starts.
func probeEndpoint(ctx context.Context, p llm.Provider) error {
	prober, ok := p.(llm.Prober)
	if !ok {
		return nil
	}
	return prober.Probe(ctx)
}

// runPlain grades with line-oriented progress suitable for CI logs.
// Verbose prints every state transition; otherwise only terminal states
// per question are shown.
func runPlain(ctx context.Context, g *grader.Grader, qz *quiz.Quiz, courseContext string, concurrency int, verbose bool) pipeline.QuizResult {
	orch := pipeline.New(g, pipeline.Options{
		CourseContext: courseContext,
		Concurrency:   concurrency,
		OnProgress: func(e pipeline.Event) {
			terminal := e.State == pipeline.StateDone ||
				e.State == pipeline.StateErrored ||
				e.State == pipeline.StateSkipped
			if !verbose && !terminal {
				return
			}
			fmt.Fprintf(os.Stderr, "[%d/%d] Q%d %s %s\n",
				e.Completed, e.Total, e.QuestionIndex+1, e.Stage, e.State)
		},
	})
	return orch.Run(ctx, qz)
}

// runWithUI grades behind a live Bubble Tea view. Quitting the view
// cancels the run; the partial result is still reported.
func runWithUI(ctx context.Context, cancel context.CancelFunc, g *grader.Grader, qz *quiz.Quiz, courseContext string, concurrency int) (pipeline.QuizResult, error) {
	prog := tea.NewProgram(ui.New(qz.Title, len(qz.Questions)))

	orch := pipeline.New(g, pipeline.Options{
		CourseContext: courseContext,
		Concurrency:   concurrency,
		OnProgress: func(e pipeline.Event) {
			prog.Send(ui.EventMsg(e))
		},
	})

	var res pipeline.QuizResult
	done := make(chan struct{})
	go func() {
		defer close(done)
		res = orch.Run(ctx, qz)
		prog.Send(ui.DoneMsg{})
	}()

	if _, err := prog.Run(); err != nil {
		cancel()
		<-done
		return res, fmt.Errorf("progress view: %w", err)
	}

	// The view exits either on DoneMsg or on a user quit; a quit
	// cancels the run and we wait for the partial result.
	select {
	case <-done:
	default:
		cancel()
		<-done
	}
	return res, nil
}
