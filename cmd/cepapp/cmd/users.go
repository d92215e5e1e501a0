package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
	"github.com/muller/cepapp/internal/core/service"
)

var (
	nameFlag     string
	emailFlag    string
	passwordFlag string
	roleFlag     string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts directly in the database",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user, typically the first ADMIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		role := domain.Role(roleFlag)
		if !role.Valid() {
			return fmt.Errorf("invalid role %q: must be USER or ADMIN", roleFlag)
		}

		st, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		defer st.close()

		svc := service.NewUserService(st.users, st.addresses, st.revocations, log)
		user, err := svc.CreateUser(cmd.Context(), ports.CreateUserInput{
			Name:     nameFlag,
			Email:    emailFlag,
			Password: passwordFlag,
			Role:     role,
		})
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return fmt.Errorf("a user with email %s already exists", emailFlag)
		case err != nil:
			return fmt.Errorf("failed to create user: %w", err)
		}

		pterm.Success.Printf("Created user %s\n", user.Email)
		_ = pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
			{"ID", "NAME", "EMAIL", "ROLE", "CREATED"},
			{strconv.FormatInt(user.ID, 10), user.Name, user.Email, string(user.Role), user.CreatedAt.Format(time.RFC3339)},
		}).Render()
		return nil
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&nameFlag, "name", "", "Display name")
	usersCreateCmd.Flags().StringVar(&emailFlag, "email", "", "Login email")
	usersCreateCmd.Flags().StringVar(&passwordFlag, "password", "", "Initial password")
	usersCreateCmd.Flags().StringVar(&roleFlag, "role", string(domain.RoleUser), "USER or ADMIN")
	_ = usersCreateCmd.MarkFlagRequired("name")
	_ = usersCreateCmd.MarkFlagRequired("email")
	_ = usersCreateCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersCreateCmd)
}
