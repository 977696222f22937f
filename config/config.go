package config

import "os"

// Config holds all environment-driven settings for the API.
type Config struct {
	HTTPAddr string

	MongoURI string
	MongoDB  string

	JWTSecret     string
	RefreshSecret string

	PostmarkToken string
	EmailSender   string

	FirebaseProjectID   string
	FirebaseClientEmail string
	FirebasePrivateKey  string
	FirebaseBucket      string
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honored.
func Load() Config {
	return Config{
		HTTPAddr:            ":" + getenv("PORT", "5000"),
		MongoURI:            getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:             getenv("MONGO_DB", "elvastore"),
		JWTSecret:           getenv("JWT_SECRET", ""),
		RefreshSecret:       getenv("REFRESH_SECRET", ""),
		PostmarkToken:       getenv("POSTMARK_API_TOKEN", ""),
		EmailSender:         getenv("EMAIL_SENDER", ""),
		FirebaseProjectID:   getenv("FIREBASE_PROJECT_ID", ""),
		FirebaseClientEmail: getenv("FIREBASE_CLIENT_EMAIL", ""),
		FirebasePrivateKey:  getenv("FIREBASE_PRIVATE_KEY", ""),
		FirebaseBucket:      getenv("FIREBASE_STORAGE_BUCKET", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
