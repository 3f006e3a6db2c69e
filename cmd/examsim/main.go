package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/academix/examsim/internal/client"
	"github.com/academix/examsim/internal/codec"
	"github.com/academix/examsim/internal/config"
	"github.com/academix/examsim/internal/engine"
	"github.com/academix/examsim/internal/errcode"
	"github.com/academix/examsim/internal/logger"
	"github.com/academix/examsim/internal/model"
	"github.com/academix/examsim/internal/review"
	"github.com/academix/examsim/internal/store"
	"github.com/academix/examsim/internal/token"
)

func main() {
	// ─── Flags ─────────────────────────────────────────────────────────
	simID := flag.String("simulator", "", "simulator id (required)")
	name := flag.String("name", "Simulador", "simulator name")
	duration := flag.Int("duration", 30, "time limit in minutes")
	questions := flag.Int("questions", 10, "number of questions")
	navigate := flag.Bool("navigate", true, "allow free navigation")
	reviewFlag := flag.Bool("review", true, "offer post-exam review")
	issueToken := flag.Bool("issue-token", false, "self-issue a session token (dev only)")
	flag.Parse()

	if *simID == "" {
		fmt.Println("Error: -simulator is required")
		flag.Usage()
		os.Exit(1)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Crypto Codec ──────────────────────────────────────────────────
	cc, err := codec.NewFromStrings(cfg.CryptoKey, cfg.CryptoIV)
	if err != nil {
		log.Fatal().Err(err).Msg(errcode.GetMessage(errcode.ErrConfiguration))
	}

	// ─── Session Store ─────────────────────────────────────────────────
	var kv store.Store
	if cfg.RedisURL != "" {
		rs, err := store.NewRedis(ctx, cfg.RedisURL, cfg.StorePrefix, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis store")
		}
		defer rs.Close()
		kv = rs
	} else {
		fs, err := store.NewFile(cfg.StateFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open state file")
		}
		kv = fs
	}
	sessions := store.New(kv, cc, log)

	// ─── Session Token ─────────────────────────────────────────────────
	if *issueToken {
		tok, err := token.Issue([]byte(cfg.TokenSecret), *simID, cfg.TokenTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to issue token")
		}
		if err := sessions.SaveToken(ctx, tok); err != nil {
			log.Fatal().Err(err).Msg("Failed to store token")
		}
	} else if _, ok := sessions.Token(ctx); !ok {
		fmt.Print("Paste session token (hidden): ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil || len(raw) == 0 {
			fmt.Println("Error: a session token is required")
			os.Exit(1)
		}
		if err := sessions.SaveToken(ctx, strings.TrimSpace(string(raw))); err != nil {
			log.Fatal().Err(err).Msg("Failed to store token")
		}
	}

	// ─── Engine ────────────────────────────────────────────────────────
	api := client.New(cfg.APIBaseURL, cfg.APITimeout, sessions, log)
	eng := engine.New(api, sessions, []byte(cfg.TokenSecret), log)

	sim := model.Simulator{
		ID:                *simID,
		Name:              *name,
		DurationMinutes:   *duration,
		NumberOfQuestions: *questions,
		Navigate:          *navigate,
		Visibility:        true,
		Review:            *reviewFlag,
	}

	resumed, err := eng.Resume(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Resume failed")
	}
	if !resumed {
		if err := eng.Start(ctx, sim); err != nil {
			log.Fatal().Err(err).Msg("Could not start exam")
		}
	}

	// ─── Clock ─────────────────────────────────────────────────────────
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if finished, _ := eng.Tick(ctx, 1); finished {
					fmt.Println("\n⏰ Tiempo agotado.")
					return
				}
			}
		}
	}()

	runExam(ctx, eng)
	close(done)

	printResult(eng.Result())

	// ─── Review ────────────────────────────────────────────────────────
	gate := review.NewGate(sessions, log)
	if gate.CanReview(ctx, *simID) && promptYesNo("¿Revisar respuestas?") {
		sess, err := gate.EnterReview(ctx, *simID)
		if err != nil {
			fmt.Println(errcode.GetMessage(errcode.ErrReviewUnavailable))
			return
		}
		printReview(sess)
	}
}

// runExam is the interactive answer loop. Commands: a number selects an
// option, n/p move, g N jumps, f finishes, q exits scoring the partial set.
func runExam(ctx context.Context, eng *engine.Engine) {
	reader := bufio.NewReader(os.Stdin)

	for eng.Status() == engine.StatusInProgress {
		q, ok := eng.CurrentQuestion()
		if !ok {
			return
		}
		sess := eng.Session()

		fmt.Printf("\n[%d/%d] (%s restante)\n%s\n",
			sess.CurrentQuestionIndex+1, len(sess.Questions),
			formatClock(eng.RemainingSeconds()), q.Content.PlainText())
		for i, opt := range q.Options {
			marker := " "
			if sel, answered := sess.Answers[q.ID]; answered && sel == opt.ID {
				marker = "*"
			}
			fmt.Printf(" %s%d) %s\n", marker, i+1, opt.Content.PlainText())
		}
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			_, _ = eng.Finish(ctx, model.FinishReasonManualExit)
			return
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "f":
			if _, err := eng.Finish(ctx, model.FinishReasonManualFinish); err != nil {
				fmt.Println(err)
			}
		case line == "q":
			if _, err := eng.Finish(ctx, model.FinishReasonManualExit); err != nil {
				fmt.Println(err)
			}
		case line == "n":
			move(ctx, eng, sess.CurrentQuestionIndex+1)
		case line == "p":
			move(ctx, eng, sess.CurrentQuestionIndex-1)
		case strings.HasPrefix(line, "g "):
			if n, err := strconv.Atoi(strings.TrimPrefix(line, "g ")); err == nil {
				move(ctx, eng, n-1)
			}
		default:
			if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(q.Options) {
				if err := eng.SelectAnswer(ctx, q.ID, q.Options[n-1].ID); err != nil {
					fmt.Println(err)
					continue
				}
				move(ctx, eng, sess.CurrentQuestionIndex+1)
			}
		}
	}
}

func move(ctx context.Context, eng *engine.Engine, index int) {
	err := eng.GoTo(ctx, index)
	switch {
	case err == nil,
		errors.Is(err, engine.ErrIndexOutOfRange),
		errors.Is(err, engine.ErrSessionNotActive):
	case errors.Is(err, engine.ErrNavigationNotAllowed):
		fmt.Println(errcode.GetMessage(errcode.ErrNavigationNotAllowed))
	default:
		fmt.Println(err)
	}
}

func printResult(res *model.ExamResult) {
	if res == nil {
		return
	}
	fmt.Println("\n═══ Resultado ═══")
	fmt.Printf("Puntaje:        %d/%d\n", res.Score, res.TotalQuestions)
	fmt.Printf("Correctas:      %d\n", res.CorrectAnswers)
	fmt.Printf("Incorrectas:    %d\n", res.IncorrectAnswers)
	fmt.Printf("Sin responder:  %d\n", res.UnansweredQuestions)
	fmt.Printf("Respondido:     %d%%\n", res.PercentageAnswered)
	fmt.Printf("Tiempo:         %s\n", formatClock(res.TimeSpentSeconds))
}

func printReview(sess *model.ExamSession) {
	fmt.Println("\n═══ Revisión ═══")
	for i, q := range sess.Questions {
		correctID, _ := q.CorrectOptionID()
		selected, answered := sess.Answers[q.ID]

		verdict := "sin responder"
		if answered && selected == correctID {
			verdict = "correcta"
		} else if answered {
			verdict = "incorrecta"
		}

		fmt.Printf("\n%d. %s — %s\n", i+1, q.Content.PlainText(), verdict)
		for _, opt := range q.Options {
			prefix := "   "
			if opt.ID == correctID {
				prefix = " ✓ "
			} else if answered && opt.ID == selected {
				prefix = " ✗ "
			}
			fmt.Printf("%s%s\n", prefix, opt.Content.PlainText())
		}
		if q.Justification != nil {
			fmt.Printf("   Justificación: %s\n", q.Justification.PlainText())
		}
	}
}

func promptYesNo(prompt string) bool {
	fmt.Printf("%s [s/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "s" || line == "si" || line == "y"
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
