package config

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	*sqlx.DB
}

func NewDatabaseConnection(dbDriver string, dbConnectionStr string) (*Database, error) {
	database, err := sqlx.Connect(dbDriver, dbConnectionStr)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка пинга БД: %w", err)
	}

	log.Println("Подключение к БД успешно выполнено")
	return &Database{
		database,
	}, nil
}

// Migrate : создаёт таблицы users и files; колонка service_used добавляется
// отдельной миграцией для старых баз
func (db *Database) Migrate() error {
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		user_id INTEGER PRIMARY KEY,
		username TEXT,
		full_name TEXT,
		is_allowed INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	filesTable := `
	CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		file_name TEXT,
		file_path TEXT,
		file_url TEXT,
		file_type TEXT,
		file_size INTEGER,
		service_used TEXT DEFAULT 'file_upload',
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users (user_id)
	)`

	if _, err := db.Exec(usersTable); err != nil {
		return fmt.Errorf("ошибка создания таблицы users: %w", err)
	}
	if _, err := db.Exec(filesTable); err != nil {
		return fmt.Errorf("ошибка создания таблицы files: %w", err)
	}

	if err := db.migrateServiceUsed(); err != nil {
		log.Printf("предупреждение миграции: %v", err)
	}

	return nil
}

func (db *Database) migrateServiceUsed() error {
	var columns []struct {
		CID     int     `db:"cid"`
		Name    string  `db:"name"`
		Type    string  `db:"type"`
		NotNull int     `db:"notnull"`
		Default *string `db:"dflt_value"`
		PK      int     `db:"pk"`
	}
	if err := db.Select(&columns, `PRAGMA table_info(files)`); err != nil {
		return err
	}

	for _, c := range columns {
		if c.Name == "service_used" {
			return nil
		}
	}

	if _, err := db.Exec(`ALTER TABLE files ADD COLUMN service_used TEXT DEFAULT 'file_upload'`); err != nil {
		return err
	}
	if _, err := db.Exec(`UPDATE files SET service_used = 'file_upload' WHERE service_used IS NULL`); err != nil {
		return err
	}

	log.Println("миграция: добавлена колонка service_used в таблицу files")
	return nil
}

func (db *Database) Close() error {
	err := db.DB.Close()
	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения с БД: %w", err)
	}

	return nil
}
