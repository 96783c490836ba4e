package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/beaconhq/beacon-server/internal/config"
	"github.com/beaconhq/beacon-server/internal/repository"
	dbbuilder "github.com/beaconhq/beacon-server/pkg/database"
)

func main() {
	_ = godotenv.Load(".env")

	rootCmd := &cobra.Command{
		Use:   "beaconctl",
		Short: "Administrative tooling for the beacon survey store",
	}

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the survey schema (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadFromEnv()

			db, err := dbbuilder.New(
				dbbuilder.WithDriver(cfg.DBDriver),
				dbbuilder.WithDataSource(cfg.DBPath),
			)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if _, err := db.Exec(repository.Schema); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}

			fmt.Printf("Schema applied to %s\n", cfg.DBPath)
			return nil
		},
	}
}

// seedTeam couples a team to a morale baseline so demo data shows realistic
// spread between healthy and struggling teams.
type seedTeam struct {
	id       string
	name     string
	deptID   string
	size     int
	baseline float64
}

func seedCmd() *cobra.Command {
	var weeks int
	var seed int64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with a demo org and survey responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadFromEnv()

			db, err := dbbuilder.New(
				dbbuilder.WithDriver(cfg.DBDriver),
				dbbuilder.WithDataSource(cfg.DBPath),
			)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if _, err := db.Exec(repository.Schema); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}

			rng := rand.New(rand.NewSource(seed))

			teams := []seedTeam{
				{"t-dispatch", "Dispatch", "dep-logistics", 9, 3.9},
				{"t-warehouse", "Warehouse", "dep-logistics", 12, 2.6},
				{"t-support", "Customer Support", "dep-frontline", 10, 3.4},
				{"t-onsite", "On-site Service", "dep-frontline", 8, 3.7},
			}

			orgStmts := `
			INSERT OR IGNORE INTO org_nodes (id, name, kind, parent_id) VALUES
			('div-ops', 'Operations', 'division', NULL),
			('dep-logistics', 'Logistics', 'department', 'div-ops'),
			('dep-frontline', 'Frontline', 'department', 'div-ops');`
			if _, err := db.Exec(orgStmts); err != nil {
				return fmt.Errorf("failed to seed org nodes: %w", err)
			}

			for _, team := range teams {
				_, err := db.Exec(
					`INSERT OR IGNORE INTO org_nodes (id, name, kind, parent_id) VALUES (?, ?, 'team', ?)`,
					team.id, team.name, team.deptID)
				if err != nil {
					return fmt.Errorf("failed to seed team %s: %w", team.id, err)
				}

				for i := 0; i < team.size; i++ {
					empID := fmt.Sprintf("%s-emp-%02d", team.id, i)
					_, err := db.Exec(
						`INSERT OR IGNORE INTO employees (id, team_id, active) VALUES (?, ?, 1)`,
						empID, team.id)
					if err != nil {
						return fmt.Errorf("failed to seed employee %s: %w", empID, err)
					}
				}
			}

			// Weekly responses walking back from the current week, with a mild
			// downward drift so dashboards show movement.
			weekStart := mondayOf(time.Now().UTC()).AddDate(0, 0, -7*(weeks-1))
			total := 0
			for w := 0; w < weeks; w++ {
				drift := float64(weeks-1-w) * 0.03
				for _, team := range teams {
					for i := 0; i < team.size; i++ {
						if rng.Float64() > 0.7 {
							continue // non-responder this week
						}
						empID := fmt.Sprintf("%s-emp-%02d", team.id, i)
						submitted := weekStart.Add(time.Duration(rng.Intn(5*24)) * time.Hour)

						_, err := db.Exec(
							`INSERT INTO responses (id, submitted_at, employee_ref, team_id, department_id, division_id,
							                        sentiment, clarity, workload, safety, leadership)
							 VALUES (?, ?, ?, ?, ?, 'div-ops', ?, ?, ?, ?, ?)`,
							uuid.NewString(), submitted.Format(time.RFC3339), empID, team.id, team.deptID,
							sample(rng, team.baseline-drift), sample(rng, team.baseline),
							sample(rng, team.baseline-drift*2), sample(rng, team.baseline),
							sample(rng, team.baseline))
						if err != nil {
							return fmt.Errorf("failed to seed response: %w", err)
						}
						total++
					}
				}
				weekStart = weekStart.AddDate(0, 0, 7)
			}

			fmt.Printf("Seeded %d teams and %d responses over %d weeks into %s\n",
				len(teams), total, weeks, cfg.DBPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 12, "Number of trailing weeks to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for reproducible data")

	return cmd
}

// sample draws a 1–5 sub-score around the given baseline.
func sample(rng *rand.Rand, baseline float64) int {
	v := int(baseline + rng.NormFloat64() + 0.5)
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

func mondayOf(t time.Time) time.Time {
	t = t.Truncate(24 * time.Hour)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
