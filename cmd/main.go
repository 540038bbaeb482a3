// Package main is the entry point for the EnergyValue allocation service.
//
// @title           EnergyValue Allocation API
// @version         1.0.0
// @description     Splits a pool of food products into daily meal slots.
//
//	Calorie densities are resolved against a versioned catalog; large pools
//	are spread over as many days as needed with a capped daily energy intake.
//
// @contact.name   API Support
// @contact.url    https://github.com/egorTorshin/EnergyValue-Telegram-Bot
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for service callers. Combine with X-User-ID to act for a user.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bot token issued for a Telegram user, as "Bearer <token>".
//
// @tag.name        Plans
// @tag.description Meal plan allocation
//
// @tag.name        Catalog
// @tag.description Calorie density catalog
//
// @tag.name        Profile
// @tag.description Daily targets from body parameters
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"os"

	_ "github.com/egorTorshin/EnergyValue-Telegram-Bot/docs" // swagger docs
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
