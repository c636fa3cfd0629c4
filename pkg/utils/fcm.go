package utils

import (
	"context"
	"log"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

var fcmClient *messaging.Client

// InitFCM initializes the Firebase messaging client. Push is optional:
// when no credentials file is configured the client stays nil and
// SendNotification becomes a no-op.
func InitFCM(credentialsFile string) {
	if credentialsFile == "" {
		log.Println("FCM credentials not configured, push notifications disabled")
		return
	}

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Printf("Error initializing firebase app: %v", err)
		return
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("Error getting messaging client: %v", err)
		return
	}

	fcmClient = client
	log.Println("Firebase Cloud Messaging ready")
}

// SendNotification pushes to a single device token. Best effort only,
// callers never fail a request because a push did not go through.
func SendNotification(token string, title string, body string, data map[string]string) error {
	if fcmClient == nil || token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	_, err := fcmClient.Send(context.Background(), message)
	if err != nil {
		log.Printf("Error sending push: %s", err)
		return err
	}
	return nil
}
