package commands

import (
	"fmt"
	"log"

	"fitura/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('ADMIN', 'RECEPTION', 'DASHBOARD');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            login text not null,
            password text not null,
            full_name text,
            role user_role,
            phone varchar(255),
            email varchar(255),
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       3,
		Description: "Create staff user with login: admin, password: 1",
		Query: `
        INSERT INTO users(login, full_name, role, password)
        SELECT 'admin', 'Administrator', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT login FROM users WHERE login = 'admin');
        `,
	},
	{
		Index:       4,
		Description: "Create staff user with login: reception, password: 1",
		Query: `
        INSERT INTO users(login, full_name, role, password)
        SELECT 'reception', 'Front Desk', 'RECEPTION', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT login FROM users WHERE login = 'reception');
        `,
	},
	{
		Index:       5,
		Description: "Create table: membership_plans.",
		Query: `
        CREATE TABLE IF NOT EXISTS membership_plans (
            id serial primary key,
            plan_number int not null,
            name text not null,
            description text,
            duration_days int not null,
            price numeric(12,2) not null default 0,
            is_active boolean default true,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       6,
		Description: "Unique plan_number among live plans.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS membership_plans_plan_number_live
            ON membership_plans (plan_number) WHERE deleted_at IS NULL;`,
	},
	{
		Index:       7,
		Description: "Create table: clients.",
		Query: `
        CREATE TABLE IF NOT EXISTS clients (
            id serial primary key,
            client_number int,
            first_name text,
            last_name text,
            email varchar(255),
            phone varchar(64),
            date_of_birth date,
            gender varchar(32),
            height float,
            weight float,
            photo_url text,
            address text,
            membership_plan_id int references membership_plans(id),
            joining_date date,
            expiry_date date,
            membership_fee numeric(12,2),
            discount numeric(12,2),
            paid_amount numeric(12,2),
            payment_date date,
            payment_mode varchar(64),
            transaction_id varchar(128),
            fitness_goals text,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       8,
		Description: "Unique client_number among live clients.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS clients_client_number_live
            ON clients (client_number) WHERE deleted_at IS NULL;`,
	},
	{
		Index:       9,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id SERIAL PRIMARY KEY,
            client_id INT NOT NULL REFERENCES clients(id),
            attendance_date DATE NOT NULL,
            in_time TIME NOT NULL,
            out_time TIME,
            status VARCHAR(8) NOT NULL DEFAULT 'IN',
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       10,
		Description: "One attendance row per client per day.",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS attendance_client_day_live
            ON attendance (client_id, attendance_date) WHERE deleted_at IS NULL;`,
	},
	{
		Index:       11,
		Description: "Create table: gym_info.",
		Query: `
        CREATE TABLE IF NOT EXISTS gym_info (
            id SERIAL PRIMARY KEY,
            gym_name VARCHAR(250) NOT NULL,
            logo_url VARCHAR(250),
            currency VARCHAR(16),
            end_of_day_time TIME,
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id)
        );`,
	},
	{
		Index:       12,
		Description: "Insert data for table: gym_info.",
		Query: `
        INSERT INTO gym_info (id, gym_name, currency, end_of_day_time, created_by, updated_by)
        SELECT 1, 'Fitura', 'INR', '23:59:59', 1, 1
        WHERE NOT EXISTS (SELECT id FROM gym_info WHERE id = 1);`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
