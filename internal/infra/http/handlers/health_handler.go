package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// BrokerStatus is satisfied by *amqp091.Connection.
type BrokerStatus interface {
	IsClosed() bool
}

type HealthHandler struct {
	DB           Pinger
	RabbitMQ     BrokerStatus
	MailProvider string
	StartTime    time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db Pinger, rabbitMQ BrokerStatus, mailProvider string) *HealthHandler {
	return &HealthHandler{
		DB:           db,
		RabbitMQ:     rabbitMQ,
		MailProvider: mailProvider,
		StartTime:    time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	// RabbitMQ is optional; events fall back to the database
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.MailProvider != "" {
		deps["mail"] = h.MailProvider
	} else {
		deps["mail"] = "not configured"
	}

	status := "healthy"
	for name, v := range deps {
		if name != "mail" && v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	resp := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
