package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/delmonaco/poker-tracker/config"
	"github.com/delmonaco/poker-tracker/db"
	"github.com/delmonaco/poker-tracker/models"
	"github.com/delmonaco/poker-tracker/repositories"
	"github.com/delmonaco/poker-tracker/services"
	_ "github.com/lib/pq"
)

// pokerctl bootstraps accounts and roles through the same service layer the
// HTTP API uses, so CLI-created players pass the exact same validation.
const usage = `Usage: pokerctl <command> [flags]

Commands:
  init-roles    create the default roles if missing
  create-admin  create a player with the admin role
  create-user   create a regular player
  list-users    print players (-role name filters by role)
  grant-admin   give a player the admin role (-id)
  revoke-admin  take the admin role away from a player (-id)
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load configuration: %v", err)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		fatal("failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	roleRepo := repositories.NewPostgresRoleRepository(dbConn)
	participationRepo := repositories.NewPostgresTournamentPlayerRepository(dbConn)

	roleService := services.NewRoleService(roleRepo, logger)
	playerService := services.NewPlayerService(dbConn, playerRepo, participationRepo, roleService, nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch command {
	case "init-roles":
		if err := roleService.EnsureDefaultRoles(ctx); err != nil {
			fatal("failed to seed roles: %v", err)
		}
		fmt.Println("default roles are in place")

	case "create-admin":
		createPlayer(ctx, roleService, playerService, args, true)

	case "create-user":
		createPlayer(ctx, roleService, playerService, args, false)

	case "list-users":
		fs := flag.NewFlagSet("list-users", flag.ExitOnError)
		roleName := fs.String("role", "", "only players holding this role (case-insensitive)")
		fs.Parse(args)

		var players []models.Player
		if *roleName != "" {
			if err := ensureKnownRole(ctx, roleService, *roleName); err != nil {
				fatal("%v", err)
			}
			players, err = playerService.ListByRole(ctx, *roleName)
		} else {
			players, err = playerService.List(ctx)
		}
		if err != nil {
			fatal("failed to list players: %v", err)
		}
		for _, p := range players {
			state := "active"
			if !p.IsActive {
				state = "disabled"
			}
			fmt.Printf("%d\t%s\t%s %s\t%s\t%s\n", p.ID, p.Nickname, p.FirstName, p.LastName, p.Email, state)
		}

	case "grant-admin":
		id := playerIDFlag("grant-admin", args)
		if _, err := playerService.GetByID(ctx, id); err != nil {
			fatal("failed to find player %d: %v", id, err)
		}
		if err := roleService.AssignToPlayer(ctx, nil, models.RoleAdmin, id); err != nil {
			fatal("failed to grant admin role: %v", err)
		}
		fmt.Printf("player %d now has the admin role\n", id)

	case "revoke-admin":
		id := playerIDFlag("revoke-admin", args)
		if err := roleService.RemoveFromPlayer(ctx, models.RoleAdmin, id); err != nil {
			fatal("failed to revoke admin role: %v", err)
		}
		fmt.Printf("admin role removed from player %d\n", id)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func createPlayer(ctx context.Context, roleService services.RoleService, playerService services.PlayerService, args []string, admin bool) {
	name := "create-user"
	if admin {
		name = "create-admin"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	firstName := fs.String("first-name", "", "player first name (required)")
	lastName := fs.String("last-name", "", "player last name (required)")
	nickname := fs.String("nickname", "", "unique nickname (required)")
	email := fs.String("email", "", "unique email (required)")
	password := fs.String("password", "", "password; omit to leave the account pending activation")
	country := fs.String("country", "", "optional ISO-3166 alpha-2 country code")
	fs.Parse(args)

	if *firstName == "" || *lastName == "" || *nickname == "" || *email == "" {
		fs.Usage()
		os.Exit(2)
	}

	// Seeding first keeps the command usable on a fresh database.
	if err := roleService.EnsureDefaultRoles(ctx); err != nil {
		fatal("failed to seed roles: %v", err)
	}

	input := services.CreatePlayerInput{
		FirstName: *firstName,
		LastName:  *lastName,
		Nickname:  *nickname,
		Email:     *email,
		IsAdmin:   admin,
	}
	if *password != "" {
		input.Password = password
	}
	if *country != "" {
		input.Country = country
	}

	player, err := playerService.Create(ctx, input)
	if err != nil {
		fatal("failed to create player: %v", err)
	}
	fmt.Printf("created player %d (%s)\n", player.ID, player.Nickname)
}

// ensureKnownRole rejects a filter on a role that does not exist, naming
// the roles that do.
func ensureKnownRole(ctx context.Context, roleService services.RoleService, roleName string) error {
	roles, err := roleService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}
	known := make([]string, 0, len(roles))
	for _, role := range roles {
		if strings.EqualFold(role.Name, roleName) {
			return nil
		}
		known = append(known, role.Name)
	}
	return fmt.Errorf("unknown role %q (known roles: %s)", roleName, strings.Join(known, ", "))
}

func playerIDFlag(command string, args []string) int {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	id := fs.Int("id", 0, "player id (required)")
	fs.Parse(args)
	if *id < 1 {
		fs.Usage()
		os.Exit(2)
	}
	return *id
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
