// Seeds the database with a reviewer account and a corpus of approved
// projects so the originality check has prior work to compare against.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/projecthub/projecthub-backend/config"
	authdomain "github.com/projecthub/projecthub-backend/internal/auth/domain"
	authrepo "github.com/projecthub/projecthub-backend/internal/auth/repository"
	authservice "github.com/projecthub/projecthub-backend/internal/auth/service"
	"github.com/projecthub/projecthub-backend/internal/bootstrap"
	projdomain "github.com/projecthub/projecthub-backend/internal/projects/domain"
	projrepo "github.com/projecthub/projecthub-backend/internal/projects/repository"
)

const (
	seedEmail    = "reviewer@projecthub.local"
	seedPassword = "change-me-on-first-login"
)

var seedProjects = []struct {
	title, synopsis string
}{
	{"Predictive models and pattern recognition for gene expression analysis",
		"This project aims to develop machine learning models to analyze gene expression data, identify significant patterns, and build a predictive tool for early disease diagnosis based on genetic markers."},
	{"Smart Wearable for Mental Health Monitoring",
		"The project involves creating a wearable device that tracks physiological signals like heart rate variability. An app will analyze this data to detect stress patterns and provide real-time mental health feedback."},
	{"IoT based Vehicle Speed Monitoring and Controlling System",
		"This project proposes an IoT system using GPS to monitor vehicle speed in real-time. If a vehicle exceeds the speed limit for a geo-fenced area, it alerts the driver and can limit acceleration."},
	{"Smart Wearable for Personal Safety",
		"A smart wearable device designed to enhance personal safety by detecting falls or panic triggers. When activated, it automatically sends an SOS message with the user's location to pre-defined contacts."},
	{"Virtual LAN Monitoring System",
		"A software tool designed to monitor traffic, performance, and security within a Virtual Local Area Network (VLAN), providing administrators with real-time analytics and alerts."},
	{"Smart Waste Management System",
		"An IoT-based system that uses ultrasonic sensors in public trash bins to detect fill levels. It optimizes waste collection routes, reducing fuel consumption and operational costs."},
	{"Smart Resume Analyser",
		"A web application that uses Natural Language Processing (NLP) to parse and analyze resumes, extracting key information like skills and experience to rank candidates for a specific job description."},
	{"IoT-based Environmental Monitoring",
		"A system of distributed IoT nodes equipped with sensors to monitor environmental parameters like air quality, temperature, and humidity, and visualize the data on a central dashboard."},
	{"AI/ML based Intrusion detection",
		"Development of a network intrusion detection system (NIDS) that uses machine learning models to analyze network traffic patterns and identify anomalous or malicious activities in real-time."},
	{"IoT-enabled Elderly Care System",
		"A home monitoring system for the elderly that uses a network of sensors to detect falls, monitor medication schedules, and provide a panic button, all connected to a caregiver's app."},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	if err := bootstrap.EnsureSchema(ctx, &cfg.Database); err != nil {
		log.Fatalf("schema: %v", err)
	}

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	embedder := bootstrap.NewEmbedder(cfg, redisClient)

	accounts := authrepo.NewAccountRepository(pool)
	projects := projrepo.NewProjectRepository(pool)

	reviewer, err := accounts.GetByEmail(ctx, seedEmail)
	if errors.Is(err, authdomain.ErrAccountNotFound) {
		hash, hashErr := authservice.HashPassword(seedPassword)
		if hashErr != nil {
			log.Fatalf("hash password: %v", hashErr)
		}
		reviewer, err = accounts.Create(ctx, seedEmail, hash, authdomain.RoleTeacher)
	}
	if err != nil {
		log.Fatalf("seed reviewer: %v", err)
	}

	existing, err := projects.ListByOwner(ctx, reviewer.ID)
	if err != nil {
		log.Fatalf("list projects: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("reviewer already owns %d projects, nothing to seed", len(existing))
		return
	}

	for _, sp := range seedProjects {
		synopsis := sp.synopsis
		p := &projdomain.Project{
			Title:    sp.title,
			Synopsis: &synopsis,
			Status:   projdomain.StatusApproved,
			OwnerID:  reviewer.ID,
		}
		if vec, embErr := embedder.Embed(ctx, sp.title+" "+sp.synopsis); embErr == nil {
			p.Embedding = vec
		} else {
			log.Printf("embedding skipped for %q: %v", sp.title, embErr)
		}
		if err := projects.Create(ctx, p); err != nil {
			log.Fatalf("seed project %q: %v", sp.title, err)
		}
	}

	log.Printf("seeded %d approved projects for %s", len(seedProjects), seedEmail)
}
