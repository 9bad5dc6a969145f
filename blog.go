package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/wansing/blog/backend"
	"github.com/wansing/blog/config"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/frontend"
	"github.com/wansing/blog/sqldb"
	"github.com/wansing/blog/sqldb/mysql"
	"github.com/wansing/blog/sqldb/postgres"
	"github.com/wansing/blog/sqldb/sqlite3"
	"github.com/wansing/blog/util"
	"golang.org/x/term"
)

func init() {
	log.SetFlags(0) // no log prefixes, on most systems systemd-journald adds them
}

func main() {

	var configPath string // is in both FlagSets

	// default FlagSet

	// Your reverse proxy must not strip the prefix. So if you're using nginx, the "proxy_pass" value should not end with a slash.
	var base = flag.String("base", "", "strip off this `prefix` from every HTTP request and prepend it to every link, overrides the config")
	flag.StringVar(&configPath, "config", "blog.ini", "read the configuration from this ini `file`")
	var listenAddr = flag.String("listen", "", "serve HTTP content at this `ip:port`, overrides the config")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)

	initFlags.StringVar(&configPath, "config", "blog.ini", "read the configuration from this ini `file`") // copied from above
	var initRoles = initFlags.Bool("roles", false, "creates the roles admin, publisher and user if they don't exist")
	var initAdmin = initFlags.Bool("admin", false, "creates the admin account from the config if it doesn't exist, requires the roles")
	var grant = initFlags.String("grant", "", "gives the role `name` to the given user")
	var email = initFlags.String("user", "", "creates the user with this `email` address, asking for a password, unless -grant is given")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	// config

	cfg, err := config.Load(configPath, ".env")
	if err != nil {
		log.Printf("could not load config: %v", err)
		return
	}

	if *base != "" {
		cfg.Base = config.NormalizeBase(*base)
	}
	if *listenAddr != "" {
		cfg.Listen = *listenAddr
	}

	// database

	sqlDB, err := sqldb.Open(cfg.DatabaseURL)
	if err != nil {
		log.Println(err)
		return
	}

	defer func() {
		log.Println("closing database")
		sqlDB.Close()
	}()

	log.Printf("using %s database", sqlDB.DriverName())

	if err := sqldb.CreateTables(sqlDB); err != nil {
		log.Printf("could not create tables: %v", err)
		return
	}

	sessionStore, err := newSessionStore(sqlDB)
	if err != nil {
		log.Println(err)
		return
	}

	// assemble stuff

	db := &core.CoreDB{
		Config: cfg,
		PostDB: sqldb.NewPostDB(sqlDB),
		RoleDB: sqldb.NewRoleDB(sqlDB),
		UserDB: sqldb.NewUserDB(sqlDB),
	}

	if err := db.Init(sessionStore); err != nil {
		log.Println(err) // log.Fatalln would not run deferred functions
		return
	}

	// init

	if initFlags.Parsed() {
		if *initRoles {
			if err := db.SeedRoles(); err != nil {
				log.Printf("error seeding roles: %v", err)
				return
			}
		}
		if *initAdmin {
			if _, err := db.SeedAdmin(cfg.AdminMail, cfg.AdminPassword); err != nil {
				log.Printf("error seeding admin: %v", err)
				return
			}
		}
		if *email != "" {
			if *grant != "" {
				grantRole(db, *grant, *email)
			} else {
				insertUser(db, *email)
			}
		}
		return
	}

	listen(db, cfg.Listen)
}

func newSessionStore(db *sqlx.DB) (scs.Store, error) {
	switch db.DriverName() {
	case "mysql":
		return mysql.NewSessionStore(db.DB)
	case "pgx":
		return postgres.NewSessionStore(db.DB)
	case "sqlite3":
		return sqlite3.NewSessionStore(db.DB)
	default:
		return nil, fmt.Errorf("unknown database backend: %s", db.DriverName())
	}
}

func insertUser(db *core.CoreDB, email string) {

	fmt.Printf("password for user %s: ", email)
	pass1, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	fmt.Printf("repeat password: ")
	pass2, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Printf("error reading password: %v", err)
		return
	}

	if !bytes.Equal(pass1, pass2) {
		log.Printf("passwords don't match")
		return
	}

	if len(bytes.TrimSpace(pass1)) == 0 {
		log.Printf("password is empty")
		return
	}

	if _, err := db.InsertUser(email, string(pass1)); err != nil {
		log.Printf("error creating user %s: %v", email, err)
		return
	}

	log.Printf("created user %s", email)
}

func grantRole(db *core.CoreDB, roleName string, email string) {

	role, err := db.GetRoleByName(roleName)
	if err != nil {
		log.Printf("error getting role %s: %v", roleName, err)
		return
	}

	user, err := db.GetUserByEmail(email)
	if err != nil {
		log.Printf("error getting user %s: %v", email, err)
		return
	}

	if err := db.Grant(user, role); err != nil {
		log.Printf("error granting role: %v", err)
		return
	}

	log.Printf("granted role %s to user %s", role.Name, user.Email)
}

// newHandler mounts the admin panel and the public routes at the configured base and wraps them into the session middleware.
func newHandler(db *core.CoreDB) http.Handler {
	var mux = http.NewServeMux()
	util.HandlePrefix(mux, db.Config.Base+"/admin", backend.NewBackendRouter(db))
	util.HandlePrefix(mux, db.Config.Base, frontend.NewRouter(db))
	return db.SessionManager.LoadAndSave(mux)
}

func listen(db *core.CoreDB, addr string) {

	// listener and listen

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Println(err)
		return
	}

	log.Printf("listening to %s", addr)

	httpSrv := &http.Server{
		Handler:      newHandler(db),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if !errors.Is(err, http.ErrServerClosed) {
				log.Printf("error listening: %v", err)
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("error shutting down: %v", err)
	}
}
