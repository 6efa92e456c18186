// Command devtoken prints a caller token signed with the configured
// LEDGER_JWT_* settings, for local runs and smoke tests.
//
//	LEDGER_OWNER=0x... devtoken -caller 0xB0A6Ed7Fa5C6C5cc507840924591C1494eF47D04 -ttl 1h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "ledgerd/internal/jwt_token"
	"ledgerd/internal/platform/config"
	"ledgerd/pkg/domain"
)

func main() {
	callerFlag := flag.String("caller", "", "caller address (0x-prefixed, EIP-55 if mixed case)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: config: %v\n", err)
		os.Exit(1)
	}
	caller, err := domain.ParseNonZeroAddress(*callerFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: -caller: %v\n", err)
		os.Exit(2)
	}

	svc := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	token, err := svc.GenerateCallerToken(caller, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
