// Copyright 2024 Police Portal Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Seeds a query log database with demo conversations so the stats
// endpoint has something to show. Run with:
//
//	go run scripts/seed-demo-data.go -db ./assistant.db
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/your-org/police-portal-assistant/internal/assistant"
	"github.com/your-org/police-portal-assistant/internal/knowledge"
	"github.com/your-org/police-portal-assistant/internal/lang"
	"github.com/your-org/police-portal-assistant/internal/match"
	"github.com/your-org/police-portal-assistant/internal/memory"
	"github.com/your-org/police-portal-assistant/internal/querylog"
	"github.com/your-org/police-portal-assistant/internal/session"
	"go.uber.org/zap"
)

type demoTurn struct {
	query    string
	language lang.Language
}

var demoConversations = [][]demoTurn{
	{
		{"I lost my phone", lang.English},
		{"how long will the report take", lang.English},
	},
	{
		{"someone hacked my bank account", lang.English},
	},
	{
		{"मेरा फोन खो गया", lang.Hindi},
		{"क्या दस्तावेज़ चाहिए", lang.Hindi},
	},
	{
		{"माझा फोन हरवला", lang.Marathi},
	},
	{
		{"blurb pixel synth drum", lang.English},
	},
}

func main() {
	dbPath := flag.String("db", "./assistant.db", "path to the query log database")
	flag.Parse()

	logger := zap.NewNop()

	store, err := knowledge.Load(logger)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	engine := assistant.NewEngine(store, match.DefaultThreshold, logger)

	queryLog, err := querylog.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("failed to open query log: %v", err)
	}
	defer func() { _ = queryLog.Close() }()

	turns := 0
	for _, conversation := range demoConversations {
		sessionID := session.GenerateSessionID()
		mem := memory.New()

		for _, turn := range conversation {
			answer := engine.Answer(mem, turn.query, turn.language)
			if err := queryLog.LogTurn(querylog.TurnRecord{
				SessionID:  sessionID,
				Language:   string(turn.language),
				Query:      turn.query,
				EntryID:    answer.EntryID,
				Contextual: answer.Contextual,
				Score:      answer.Score,
			}); err != nil {
				log.Fatalf("failed to log turn: %v", err)
			}
			turns++
		}
	}

	token, err := queryLog.IssueToken(time.Now(), "1", "9876543210")
	if err != nil {
		log.Fatalf("failed to issue demo token: %v", err)
	}

	fmt.Printf("Seeded %d turns across %d sessions, demo token %s\n",
		turns, len(demoConversations), token.Value)
}
