package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mroshb/filmorate/internal/config"
	"github.com/mroshb/filmorate/internal/database"
	"github.com/mroshb/filmorate/internal/importer"
	"github.com/mroshb/filmorate/internal/services"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
)

const usage = `usage: filmorate <command> [flags]

commands:
  migrate                      create or update the database schema
  like     -film ID -user ID   like a film
  unlike   -film ID -user ID   remove a like
  top      [-n N]              most liked films
  film     -id ID              film with its like count
  friend   -user ID -friend ID make two users friends
  unfriend -user ID -friend ID end a friendship
  friends  -user ID            list a user's friends
  common   -user ID -other ID  friends two users share
  import   -file PATH          load films and users from a workbook
  export   [-n N] -file PATH   save the ranking to a workbook
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.AppEnv == "development")
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("Command failed", "command", os.Args[1], "code", errors.CodeOf(err), "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	filmID := fs.Uint("film", 0, "film id")
	userID := fs.Uint("user", 0, "user id")
	friendID := fs.Uint("friend", 0, "friend id")
	otherID := fs.Uint("other", 0, "other user id")
	id := fs.Uint("id", 0, "film id")
	n := fs.Int("n", cfg.TopFilmsDefault, "number of films")
	file := fs.String("file", "", "workbook path")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidArgument, "bad flags")
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	if command == "migrate" {
		if b.db == nil {
			return errors.Invalid("migrate needs the postgres store")
		}
		if err := database.AutoMigrate(b.db); err != nil {
			return err
		}
		logger.Info("Migrations applied")
		return nil
	}

	catalog := services.NewCatalogService(b.entities, b.relations)

	switch command {
	case "like":
		return catalog.Like(ctx, *filmID, *userID)
	case "unlike":
		return catalog.Unlike(ctx, *filmID, *userID)
	case "top":
		top, err := catalog.TopFilms(ctx, *n)
		if err != nil {
			return err
		}
		return printJSON(top)
	case "film":
		film, err := catalog.FilmWithStats(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(film)
	case "friend":
		return catalog.AddFriend(ctx, *userID, *friendID)
	case "unfriend":
		return catalog.RemoveFriend(ctx, *userID, *friendID)
	case "friends":
		friends, err := catalog.FriendsOf(ctx, *userID)
		if err != nil {
			return err
		}
		return printJSON(friends)
	case "common":
		common, err := catalog.CommonFriends(ctx, *userID, *otherID)
		if err != nil {
			return err
		}
		return printJSON(common)
	case "import":
		return importCatalog(ctx, catalog, *file)
	case "export":
		if *file == "" {
			return errors.Invalid("-file is required")
		}
		top, err := catalog.TopFilms(ctx, *n)
		if err != nil {
			return err
		}
		if err := importer.WriteTopFilms(*file, top); err != nil {
			return err
		}
		logger.Info("Ranking exported", "file", *file, "films", len(top))
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return errors.Invalid(fmt.Sprintf("unknown command %q", command))
	}
}

func importCatalog(ctx context.Context, catalog *services.CatalogService, path string) error {
	if path == "" {
		return errors.Invalid("-file is required")
	}

	data, err := importer.ReadCatalog(path)
	if err != nil {
		return err
	}

	imported := 0
	for i := range data.Films {
		if err := catalog.CreateFilm(ctx, &data.Films[i]); err != nil {
			logger.Warn("Failed to import film", "name", data.Films[i].Name, "error", err)
			continue
		}
		imported++
	}

	users := 0
	if len(data.Users) > 0 {
		created, err := catalog.CreateUsers(ctx, data.Users)
		users = len(created)
		if err != nil {
			logger.Warn("User import stopped early", "created", users, "error", err)
		}
	}

	logger.Info("Catalog imported", "films", imported, "users", users)
	return printJSON(map[string]int{"films": imported, "users": users})
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write output")
	}
	return nil
}
