package app

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Davie-07/KTVC-FINAL-sub001/internal/config"
	httpx "github.com/Davie-07/KTVC-FINAL-sub001/internal/http"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/http/handlers"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	gateH := handlers.NewGateHandlers(c.VerificationSvc)
	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(gateH, jwtMW, casbinMW)

	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) == 0 {
		c.Casbin.E.AddPolicy("role_gate", "/gate/*", "(GET|POST)")
		c.Casbin.E.AddPolicy("role_admin", "/gate/*", "(GET|POST)")
		_ = c.Casbin.E.SavePolicy()
		log.Println("casbin: seeded default gate policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
