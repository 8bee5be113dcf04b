// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner runs agent trees within sessions.
//
// A [Runner] turns a user message into one invocation of the agent tree and
// persists the resulting events through the session service:
//
//	r := runner.NewInMemoryRunner("weather", rootAgent)
//	ses, err := r.Sessions.CreateSession(ctx, r.AppName(), "user", "", nil)
//	if err != nil {
//		return err
//	}
//	msg := genai.NewContentFromText("What's the weather in Paris?", genai.RoleUser)
//	for event, err := range r.Run(ctx, ses.UserID(), ses.ID(), msg, nil) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(event.GetContent())
//	}
package runner
