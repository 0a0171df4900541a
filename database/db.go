package database

import (
	"database/sql"
	"log"
	"sync"

	"github.com/jerry-enebeli/runboard/config"
	"github.com/jerry-enebeli/runboard/internal/cache"
	_ "github.com/lib/pq"
)

// Declare a package-level variable to hold the singleton instance.
// Ensure the instance is not accessible outside the package.
var instance *Datasource
var once sync.Once

type Datasource struct {
	Conn  *sql.DB
	Cache cache.Cache
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
// The saved view cache is attached when redis is configured.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, errConn := ConnectDB(configuration.DataSource.Dns)
		if errConn != nil {
			err = errConn
			return
		}
		ds := &Datasource{Conn: con}
		if configuration.Redis.Dns != "" {
			c, errCache := cache.NewCache()
			if errCache != nil {
				log.Printf("redis unavailable, saved views will not be cached: %v", errCache)
			} else {
				ds.Cache = c
			}
		}
		instance = ds
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

// ConnectDB opens and pings Postgres. Tables are created by the migrate command.
func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database Connection error ❌: %v", err)
		return nil, err
	}
	return db, nil
}
