package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/betbot/alpacasamples/pkg/config"
	"github.com/betbot/alpacasamples/pkg/logger"
	"github.com/betbot/alpacasamples/pkg/secretstore"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage stored credentials",
}

var (
	importDB     string
	importKey    string
	importPrefix string
)

var credentialsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy api_key/api_secret from the INI file into an encrypted Badger store",
	Long: `Copy api_key/api_secret from the INI file into an encrypted Badger store.

Afterwards run samples with --secret-db (or ALPACA_SECRET_DB) and
ALPACA_SECRET_KEY set; the INI file can then be removed.`,
	Args: cobra.NoArgs,
	RunE: runCredentialsImport,
}

func init() {
	f := credentialsImportCmd.Flags()
	f.StringVar(&importDB, "db", getenv("ALPACA_SECRET_DB", "data/secrets.badger"), "badger secrets db path")
	f.StringVar(&importKey, "secret-key", "", "badger encryption key, 32 bytes hex or base64 (default $ALPACA_SECRET_KEY)")
	f.StringVar(&importPrefix, "prefix", "", "key prefix inside badger (default alpaca/)")
	credentialsCmd.AddCommand(credentialsImportCmd)
}

func runCredentialsImport(cmd *cobra.Command, args []string) error {
	key := importKey
	if key == "" {
		key = os.Getenv("ALPACA_SECRET_KEY")
	}
	keyBytes, err := secretstore.ParseKey(key)
	if err != nil {
		return err
	}
	if keyBytes == nil {
		return errors.New("secret key is required: set ALPACA_SECRET_KEY or pass --secret-key")
	}

	creds, err := config.LoadCredentials(cfgFile, section)
	if err != nil {
		return err
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	store, err := secretstore.Open(secretstore.OpenOptions{Path: importDB, EncryptionKey: keyBytes})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := config.SaveCredentialsToStore(store, importPrefix, *creds); err != nil {
		return err
	}
	logger.Infof("imported credentials from %s [%s] into %s", cfgFile, section, importDB)
	fmt.Fprintln(cmd.OutOrStdout(), importDB)
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
