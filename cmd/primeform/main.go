// Command primeform is the PrimeForm client CLI: it drives the same
// coordinated API client and per-user cache the mobile shell embeds, against
// a real or stub backend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"primeform/config"
	"primeform/internal/domain/repository"
	"primeform/internal/domain/service"
	"primeform/internal/infra/api"
	"primeform/internal/infra/auth"
	"primeform/internal/infra/cache"
	logs "primeform/internal/infra/log"
	"primeform/internal/infra/persistence/filestore"
	"primeform/internal/infra/qrcode"
	"primeform/internal/usecase"
	"primeform/internal/usecase/impl"

	"go.uber.org/fx"
)

type runParams struct {
	fx.In
	fx.Shutdowner

	Logger        *slog.Logger
	Auth          usecase.AuthUsecase
	Profile       usecase.ProfileUsecase
	Plans         usecase.PlanUsecase
	Progress      usecase.ProgressUsecase
	Subscriptions usecase.SubscriptionUsecase
	Notifications usecase.NotificationUsecase
}

func main() {
	fx.New(
		fx.NopLogger,
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Invoke(
			run,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newFileStore,
			cache.NewManager,
		),
	)
}

// newFileStore opens the device key-value store under the configured
// directory.
func newFileStore(cfg *config.Config) (repository.KeyValueStore, error) {
	return filestore.New(cfg.Storage.Path)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewCredentialStore,
			auth.NewTokenDecoder,
			auth.NewSessionInvalidator,
			api.NewClient,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewProfileService,
			impl.NewPlanService,
			impl.NewProgressService,
			impl.NewSubscriptionService,
			impl.NewNotificationService,
		),
	)
}

func run(ctx context.Context, params runParams) {
	code := dispatch(ctx, params, os.Args[1:])
	if err := params.Shutdown(fx.ExitCode(code)); err != nil {
		params.Logger.Error("Shutdown failed", slog.Any("error", err))
	}
}

func dispatch(ctx context.Context, params runParams, args []string) int {
	if len(args) == 0 {
		usage()

		return 2
	}

	// Every command except the auth entry points expects a restored session.
	command, rest := args[0], args[1:]
	switch command {
	case "signup":
		if len(rest) != 3 {
			return fail("usage: primeform signup <name> <email> <password>")
		}

		return report(params.Auth.Signup(ctx, &usecase.SignupInput{Name: rest[0], Email: rest[1], Password: rest[2]}))

	case "login":
		if len(rest) != 2 {
			return fail("usage: primeform login <email> <password>")
		}

		return report(params.Auth.Login(ctx, &usecase.LoginInput{Email: rest[0], Password: rest[1]}))

	case "logout":
		if err := params.Auth.Logout(ctx); err != nil {
			return fail(err.Error())
		}
		fmt.Println("logged out")

		return 0

	case "status":
		return report(params.Auth.Restore(ctx))

	case "profile":
		if _, err := params.Auth.Restore(ctx); err != nil {
			return fail(err.Error())
		}

		return report(params.Profile.GetProfile(ctx))

	case "onboard":
		return runOnboard(ctx, params, rest)

	case "plan":
		return runPlan(ctx, params, rest)

	case "complete":
		if len(rest) != 2 {
			return fail("usage: primeform complete <diet|workout> <YYYY-MM-DD>")
		}
		if _, err := params.Auth.Restore(ctx); err != nil {
			return fail(err.Error())
		}

		return report(params.Progress.CompleteDay(ctx, rest[0], rest[1]))

	case "completions":
		planType := ""
		if len(rest) > 0 {
			planType = rest[0]
		}
		if _, err := params.Auth.Restore(ctx); err != nil {
			return fail(err.Error())
		}

		return report(params.Progress.ListCompletions(ctx, planType))

	case "streak":
		if len(rest) != 1 {
			return fail("usage: primeform streak <diet|workout>")
		}
		if _, err := params.Auth.Restore(ctx); err != nil {
			return fail(err.Error())
		}

		return report(params.Progress.GetStreak(ctx, rest[0]))

	case "subscription":
		if _, err := params.Auth.Restore(ctx); err != nil {
			return fail(err.Error())
		}

		return report(params.Subscriptions.GetSubscription(ctx))

	case "notifications":
		if _, err := params.Auth.Restore(ctx); err != nil {
			return fail(err.Error())
		}

		return report(params.Notifications.ListNotifications(ctx))

	case "notify-read":
		if len(rest) != 1 {
			return fail("usage: primeform notify-read <id>")
		}
		if _, err := params.Auth.Restore(ctx); err != nil {
			return fail(err.Error())
		}
		if err := params.Notifications.MarkRead(ctx, rest[0]); err != nil {
			return fail(err.Error())
		}
		fmt.Println("marked read")

		return 0

	case "share-qr":
		return runShareQR(ctx, params, rest)

	default:
		usage()

		return 2
	}
}

func runOnboard(ctx context.Context, params runParams, args []string) int {
	flags := flag.NewFlagSet("onboard", flag.ContinueOnError)
	input := usecase.OnboardingInput{}
	flags.IntVar(&input.Age, "age", 0, "age in years")
	flags.StringVar(&input.Gender, "gender", "", "male, female or other")
	flags.Float64Var(&input.HeightCM, "height", 0, "height in cm")
	flags.Float64Var(&input.WeightKG, "weight", 0, "weight in kg")
	flags.Float64Var(&input.TargetWeightKG, "target-weight", 0, "goal weight in kg")
	flags.StringVar(&input.FitnessLevel, "level", "", "beginner, intermediate or advanced")
	flags.StringVar(&input.Goal, "goal", "", "lose_weight, build_muscle or stay_fit")
	flags.StringVar(&input.DietaryPreference, "diet", "", "none, vegetarian, vegan or halal")
	flags.IntVar(&input.WorkoutsPerWeek, "workouts", 0, "sessions per week")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if _, err := params.Auth.Restore(ctx); err != nil {
		return fail(err.Error())
	}

	return report(params.Profile.SubmitOnboarding(ctx, &input))
}

func runPlan(ctx context.Context, params runParams, args []string) int {
	flags := flag.NewFlagSet("plan", flag.ContinueOnError)
	generate := flags.Bool("generate", false, "generate a fresh plan")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		return fail("usage: primeform plan [--generate] <diet|workout>")
	}

	if _, err := params.Auth.Restore(ctx); err != nil {
		return fail(err.Error())
	}

	planType := flags.Arg(0)
	switch {
	case planType == "diet" && *generate:
		return report(params.Plans.GenerateDietPlan(ctx))
	case planType == "diet":
		plan, present, err := params.Plans.GetDietPlan(ctx)
		if err != nil {
			return fail(err.Error())
		}
		if !present {
			fmt.Println("no active diet plan")

			return 0
		}

		return report(plan, nil)
	case planType == "workout" && *generate:
		return report(params.Plans.GenerateWorkoutPlan(ctx))
	case planType == "workout":
		plan, present, err := params.Plans.GetWorkoutPlan(ctx)
		if err != nil {
			return fail(err.Error())
		}
		if !present {
			fmt.Println("no active workout plan")

			return 0
		}

		return report(plan, nil)
	default:
		return fail("plan type must be diet or workout")
	}
}

func runShareQR(ctx context.Context, params runParams, args []string) int {
	if len(args) < 1 || len(args) > 2 {
		return fail("usage: primeform share-qr <diet|workout> [outfile.png]")
	}

	if _, err := params.Auth.Restore(ctx); err != nil {
		return fail(err.Error())
	}

	png, err := params.Plans.SharePlanQR(ctx, args[0])
	if err != nil {
		return fail(err.Error())
	}

	outfile := args[0] + "-plan-qr.png"
	if len(args) == 2 {
		outfile = args[1]
	}
	if err := os.WriteFile(outfile, png, 0o600); err != nil {
		return fail(err.Error())
	}
	fmt.Println("wrote", outfile)

	return 0
}

// report prints a command result as indented JSON.
func report[T any](value T, err error) int {
	if err != nil {
		return fail(err.Error())
	}

	out, marshalErr := json.MarshalIndent(value, "", "  ")
	if marshalErr != nil {
		return fail(marshalErr.Error())
	}
	fmt.Println(string(out))

	return 0
}

func fail(message string) int {
	fmt.Fprintln(os.Stderr, message)

	return 1
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: primeform <command> [args]

commands:
  signup <name> <email> <password>
  login <email> <password>
  logout
  status
  profile
  onboard [flags]
  plan [--generate] <diet|workout>
  complete <diet|workout> <YYYY-MM-DD>
  completions [diet|workout]
  streak <diet|workout>
  subscription
  notifications
  notify-read <id>
  share-qr <diet|workout> [outfile.png]`)
}
