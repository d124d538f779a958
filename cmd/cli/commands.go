package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	userID    string
	date      string
	startTime string
	isPrivate bool
	bookingID string
	leaveOnly bool
	limit     int
)

func init() {
	rootCmd.AddCommand(healthCmd)

	availabilityCmd.Flags().StringVar(&date, "date", "", "Day to check, YYYY-MM-DD (required)")
	availabilityCmd.Flags().StringVar(&userID, "user", "", "User the view is rendered for")
	availabilityCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(availabilityCmd)

	bookCmd.Flags().StringVar(&userID, "user", "", "Booking owner (required)")
	bookCmd.Flags().StringVar(&date, "date", "", "Day to book, YYYY-MM-DD (required)")
	bookCmd.Flags().StringVar(&startTime, "start", "", "Slot start time, HH:MM (required)")
	bookCmd.Flags().BoolVar(&isPrivate, "private", false, "Keep the roster closed")
	bookCmd.MarkFlagRequired("user")
	bookCmd.MarkFlagRequired("date")
	bookCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(bookCmd)

	for _, c := range []*cobra.Command{joinCmd, leaveCmd, cancelCmd, rosterCmd} {
		c.Flags().StringVar(&bookingID, "booking", "", "Booking ID (required)")
		c.MarkFlagRequired("booking")
	}
	for _, c := range []*cobra.Command{joinCmd, leaveCmd, cancelCmd, myCmd, nextCmd} {
		c.Flags().StringVar(&userID, "user", "", "User ID (required)")
		c.MarkFlagRequired("user")
	}
	cancelCmd.Flags().BoolVar(&leaveOnly, "leave-only", false, "Owner steps off the roster but keeps the booking")
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(myCmd)
	rootCmd.AddCommand(nextCmd)

	openCmd.Flags().IntVar(&limit, "limit", 0, "Maximum matches to return, 0 for all")
	rootCmd.AddCommand(openCmd)

	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Show the day's slots and their status",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{"date": {date}, "user": {userID}}
		return performGetRequest("/availability?" + q.Encode())
	},
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Reserve a slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/bookings", map[string]any{
			"user_id":    userID,
			"date":       date,
			"start_time": startTime,
			"is_private": isPrivate,
		})
	},
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Claim a seat on an open match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/bookings/join", map[string]any{
			"booking_id": bookingID,
			"user_id":    userID,
		})
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Release a seat",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/bookings/leave", map[string]any{
			"booking_id": bookingID,
			"user_id":    userID,
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a booking (owners) or step off its roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/bookings/cancel", map[string]any{
			"booking_id": bookingID,
			"user_id":    userID,
			"leave_only": leaveOnly,
		})
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the players on a booking",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{"booking_id": {bookingID}}
		return performGetRequest("/bookings/players?" + q.Encode())
	},
}

var myCmd = &cobra.Command{
	Use:   "my",
	Short: "List a user's upcoming bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{"user": {userID}}
		return performGetRequest("/my-bookings?" + q.Encode())
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show a user's next booking",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{"user": {userID}}
		return performGetRequest("/next-booking?" + q.Encode())
	},
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "List open matches with free seats",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/open-matches"
		if limit > 0 {
			endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
		}
		return performGetRequest(endpoint)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List known player profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage counters and per-day booking volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload map[string]any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
