package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/lifesync/lifesync/config"
	"github.com/lifesync/lifesync/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hasher := helpers.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var tenantID string
	err = db.QueryRow(`
		INSERT INTO tenants (name, domain)
		VALUES ($1, $2)
		ON CONFLICT (domain) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "ACME Corporation", "acme.com").Scan(&tenantID)
	if err != nil {
		log.Fatalf("failed to seed tenant: %v", err)
	}
	fmt.Printf("seeded tenant: id=%s domain=acme.com\n", tenantID)

	users := []struct {
		name  string
		email string
		role  string
		xp    int
		level int
	}{
		{"Admin User", "admin@acme.com", "ADMIN", 500, 6},
		{"Maria Gestora", "manager@acme.com", "MANAGER", 350, 4},
		{"João Silva", "joao@acme.com", "EMPLOYEE", 250, 3},
	}
	var employeeID string
	for _, u := range users {
		var id string
		err = db.QueryRow(`
			INSERT INTO users (tenant_id, name, email, password_hash, role, xp, level)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (tenant_id, email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, tenantID, u.name, u.email, hash, u.role, u.xp, u.level).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		if u.role == "EMPLOYEE" {
			employeeID = id
		}
		fmt.Printf("seeded user: email=%s role=%s password=password123\n", u.email, u.role)
	}

	challenges := []struct {
		title       string
		description string
		category    string
		xpReward    int
	}{
		{"Pausa de 5 minutos", "Levante e estique o corpo", "PHYSICAL", 15},
		{"Beber 2L de água", "Mantenha-se hidratado ao longo do dia", "NUTRITION", 10},
		{"Meditação guiada", "5 minutos de meditação", "MENTAL", 30},
		{"Conversa com colega", "Tenha uma conversa significativa", "SOCIAL", 15},
	}
	for _, c := range challenges {
		var exists bool
		if err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM challenges WHERE title = $1 AND is_global)`, c.title).Scan(&exists); err != nil {
			log.Fatalf("failed to check challenge %q: %v", c.title, err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(`
			INSERT INTO challenges (title, description, category, xp_reward, is_global)
			VALUES ($1, $2, $3, $4, TRUE)
		`, c.title, c.description, c.category, c.xpReward); err != nil {
			log.Fatalf("failed to seed challenge %q: %v", c.title, err)
		}
		fmt.Printf("seeded global challenge: %s\n", c.title)
	}

	if employeeID != "" {
		if _, err := db.Exec(`
			INSERT INTO mood_logs (user_id, mood, tags, note)
			SELECT $1, 4, 'productive,motivated', 'Dia produtivo!'
			WHERE NOT EXISTS (SELECT 1 FROM mood_logs WHERE user_id = $1)
		`, employeeID); err != nil {
			log.Fatalf("failed to seed mood log: %v", err)
		}
	}

	fmt.Println("seed completed")
}
