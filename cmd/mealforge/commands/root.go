// Package commands implements the CLI commands for mealforge.
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "mealforge",
	Short: "RAG-powered recipe planner with simulated cart filling",
	Long: `Mealforge scrapes recipe sites, retrieves the pages most relevant
to the ingredients you have, and asks an LLM for recipes that fit your
dietary needs. Missing ingredients are looked up in the Walmart catalog
and added to a simulated cart.

Examples:
  # Plan vegetarian recipes for four from what's in the pantry
  mealforge plan --people 4 --ingredients "tomatoes, pasta" --dietary vegetarian

  # Use Anthropic instead of OpenAI
  mealforge plan --people 2 --ingredients "tofu, rice" -p anthropic

  # Index different recipe sites and emit YAML
  mealforge plan --people 4 --ingredients "eggs, flour" \
      --source-url "https://www.seriouseats.com/recipes" --format yaml`,
}

var cfgFile string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.mealforge.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	// Local .env first, so credentials don't need exporting
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".mealforge")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MEALFORGE")
	viper.AutomaticEnv()

	_ = viper.BindEnv("api_key", "OPENAI_API_KEY", "ANTHROPIC_API_KEY")
	_ = viper.BindEnv("walmart_client_id", "WALMART_CLIENT_ID")
	_ = viper.BindEnv("walmart_client_secret", "WALMART_CLIENT_SECRET")

	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
