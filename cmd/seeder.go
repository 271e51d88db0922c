package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"payments", "worksheets", "messages", "blocks", "users"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedUsers := []struct {
			Email       string
			Name        string
			Role        string
			Verified    bool
			Designation string
			Salary      int64
		}{
			{"admin@flowhr.io", "Ayesha Admin", "Admin", true, "Operations Lead", 9000},
			{"hr@flowhr.io", "Hasan HR", "HR", true, "HR Executive", 6000},
			{"employee@flowhr.io", "Emon Employee", "Employee", true, "Software Engineer", 4500},
		}

		for _, u := range seedUsers {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", u.Email).Scan(&exists); err == nil {
				fmt.Println("user already exists:", u.Email)
				continue
			}

			_, err := db.Exec(
				`INSERT INTO users (email, name, role, verified, status, designation, salary, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, 'Active', $5, $6, now(), now())`,
				u.Email, u.Name, u.Role, u.Verified, u.Designation, u.Salary,
			)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		testimonials := []struct {
			Name   string
			Title  string
			Quote  string
			Rating int
		}{
			{"Nadia Rahman", "Founder, Brightside Labs", "Payroll used to eat a full day every month. Now it takes minutes.", 5},
			{"Carlos Mendes", "HR Manager, Vectra Co", "The verification workflow keeps our employee records clean.", 4},
			{"Lin Wei", "COO, Arbor Systems", "Blocking off-boarded accounts at the door saved us an audit finding.", 5},
		}

		for _, t := range testimonials {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM testimonials WHERE name = $1", t.Name).Scan(&exists); err == nil {
				continue
			}
			_, err := db.Exec(
				`INSERT INTO testimonials (name, title, quote, rating, created_at) VALUES ($1, $2, $3, $4, now())`,
				t.Name, t.Title, t.Quote, t.Rating,
			)
			if err != nil {
				log.Fatalf("failed to insert testimonial: %v", err)
			}
			fmt.Println("Seeded testimonial from:", t.Name)
		}
	},
}
