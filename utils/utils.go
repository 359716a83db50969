package utils

import (
	"dashkit/config"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var Logger *zap.Logger

func init() {
	var err error
	if os.Getenv("LOG") == "debug" {
		Logger, err = zap.NewDevelopment()
		Check(err)
	} else {
		Logger, err = zap.NewProduction()
		Check(err)
	}
}

func Check(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func GetDB(cfg *config.Config) (*gorm.DB, error) {
	sslMode := "disable"
	if cfg.PostgresSSL {
		sslMode = "require"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword,
		cfg.DatabaseName, sslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

type Response struct {
	Msg     string          `json:"msg"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func WriteErrorMsg(msg string, status int, rw http.ResponseWriter) {
	res := &Response{
		Msg:     msg,
		Success: false,
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(MarshalJSON(res))
}

func WriteSuccessMsg(msg string, status int, rw http.ResponseWriter) {
	res := &Response{
		Msg:     msg,
		Success: true,
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(MarshalJSON(res))
}

func WriteSuccessMsgWithData(msg string, status int, data interface{}, rw http.ResponseWriter) {
	res := &Response{
		Msg:     msg,
		Success: true,
		Data:    MarshalJSON(data),
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(MarshalJSON(res))
}

// WriteJSON writes the given payload as-is. Run endpoints use this instead of
// the envelope because their response shapes ({"data": ...}, {"result": ...},
// {"error": ...}) are part of the public contract.
func WriteJSON(payload interface{}, status int, rw http.ResponseWriter) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(MarshalJSON(payload))
}

func MarshalJSON(data interface{}) []byte {
	buf, err := json.Marshal(data)
	Check(err)
	return buf
}

// Redact shortens a secret for logging. Only the first two characters
// survive so operators can tell which key was used without leaking it.
func Redact(secret string) string {
	if len(secret) <= 2 {
		return "**"
	}
	return secret[:2] + "***"
}
