package cli

import (
	"github.com/spf13/cobra"

	"tester-quiz-service/internal/app"
	"tester-quiz-service/internal/config"
	"tester-quiz-service/internal/domain"
	"tester-quiz-service/internal/infra/jsonfile"
	"tester-quiz-service/internal/infra/security"
	"tester-quiz-service/internal/logger"
)

// NewRegisterCmd creates a user account from the command line, mainly for
// bootstrapping the first admin.
func NewRegisterCmd(configPath *string) *cobra.Command {
	var (
		username string
		password string
		admin    bool
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(*configPath, username, password, admin)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username to register")
	cmd.Flags().StringVar(&password, "password", "", "password for the account")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runRegister(configPath, username, password string, admin bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	users, err := jsonfile.NewUserDirectory(cfg.UsersPath(), cfg.LockoutAttempts(), cfg.LockoutWindow())
	if err != nil {
		return err
	}

	role := domain.RoleUser
	if admin {
		role = domain.RoleAdmin
	}
	auth := app.NewAuthService(users, security.NewBcryptHasher())
	user, err := auth.Register(app.RegisterRequest{Username: username, Password: password, Role: role})
	if err != nil {
		return err
	}
	log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user registered")
	return nil
}
