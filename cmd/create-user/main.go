package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"metanoia_app_go/config"
	"metanoia_app_go/db"
	"metanoia_app_go/logger"
	"metanoia_app_go/models"
	"metanoia_app_go/services"

	zlog "github.com/rs/zerolog/log"
	"golang.org/x/term"
)

func main() {
	role := flag.String("role", models.RoleAdmin, "account role (admin or editor)")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Environment)

	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to run migrations")
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Novo usuário do painel ===")
	fmt.Println()

	fmt.Print("Nome: ")
	name, _ := reader.ReadString('\n')

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')

	fmt.Print("Senha: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to read password")
	}
	fmt.Println()

	user, err := services.CreateUser(db.DB, services.UserInput{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: string(passwordBytes),
		Role:     *role,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, services.UserMessage(err))
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("✓ Usuário criado")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Nome: %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Perfil: %s\n", user.Role)
	fmt.Println()
	fmt.Printf("Acesse %s/login\n", cfg.AppURL)
}
