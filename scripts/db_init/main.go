// Command db_init creates the database schema and optionally seeds a
// caregiver account plus monitored people. Registration has no HTTP route;
// this is how operators provision accounts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	dbfs "github.com/garnizeh/fallwatch/db"
	"github.com/garnizeh/fallwatch/internal/config"
	"github.com/garnizeh/fallwatch/internal/db"
	"github.com/garnizeh/fallwatch/internal/repository/sqlite"
	"github.com/garnizeh/fallwatch/pkg/models"
)

type personList []string

func (p *personList) String() string { return fmt.Sprint(*p) }

func (p *personList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "", "Path to config YAML file")
		username   = flag.String("username", "", "Caregiver username to seed")
		password   = flag.String("password", "", "Password for the seeded caregiver")
		people     personList
	)
	flag.Var(&people, "person", "Fullname of a monitored person to seed (repeatable)")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	repo := sqlite.New(database, nil)

	var uid int64
	if *username != "" {
		if *password == "" {
			fmt.Fprintln(os.Stderr, "-password is required when seeding a user")
			os.Exit(1)
		}

		existing, err := repo.GetUserByUsername(ctx, *username)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lookup user error: %v\n", err)
			os.Exit(1)
		}
		if existing != nil {
			uid = existing.UID
			fmt.Printf("User %q already exists (uid=%d).\n", *username, uid)
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Hash password error: %v\n", err)
				os.Exit(1)
			}
			uid, err = repo.CreateUser(ctx, &models.User{Username: *username, Pass: string(hash)})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Create user error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Created user %q (uid=%d).\n", *username, uid)
		}
	}

	for _, fullname := range people {
		p := &models.Person{Fullname: fullname}
		if uid != 0 {
			p.UID.Int64 = uid
			p.UID.Valid = true
		}
		personID, err := repo.CreatePerson(ctx, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Create person error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created person %q (person_id=%d).\n", fullname, personID)
	}

	fmt.Println("Database initialized successfully.")
}
