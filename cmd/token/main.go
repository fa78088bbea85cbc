package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"mensa/internal/auth"
	"mensa/internal/env"
)

// Prints a new webhook token for the assistant and the hash to add to WEBHOOK_TOKEN_HASHES
func main() {
	hashOnly := flag.String("hash", "", "print the hash of an existing token instead of generating one")
	flag.Parse()

	if *hashOnly != "" {
		fmt.Println(auth.HashToken(*hashOnly))
		return
	}

	raw, hash, err := auth.GenerateToken()
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		os.Exit(1)
	}

	fmt.Printf("token: %s\n", raw)
	fmt.Printf("hash:  %s\n", hash)
	fmt.Printf("\nAdd the hash to %s and configure the token as bearer token or basic-auth password of the webhook.\n", env.EnvWebhookTokenHashes)
}

//This project is the webhook backend of the OpenSourceDUTH canteen assistant. It answers "what is served on day D" from open canteen data.
//Mensa Webhook Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
