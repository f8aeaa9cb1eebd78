package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hyperterse/dataexplorer/core/cli/internal"
	"github.com/hyperterse/dataexplorer/core/cli/internal/credentials"
	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/logger"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

// loginCmd stores an API key in the OS keyring
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the API key for a forum in the OS keyring",
	Long: `Store the API key for a forum in the OS keyring.
The key is read from --api-key, or from stdin when the flag is not set.`,
	Args:          cobra.NoArgs,
	RunE:          runLogin,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// logoutCmd removes a stored API key
var logoutCmd = &cobra.Command{
	Use:           "logout",
	Short:         "Remove the stored API key for a forum",
	Args:          cobra.NoArgs,
	RunE:          runLogout,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	log := logger.New("login")

	target, err := credentialHost()
	if err != nil {
		return err
	}

	key := apiKey
	if key == "" {
		key, err = readAPIKey(cmd)
		if err != nil {
			return log.Errorf("failed to read API key: %w", err)
		}
	}
	if key == "" {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "API key is required", nil)
	}

	if err := credentials.Set(target, key); err != nil {
		return log.Errorf("failed to store API key for %s: %w", target, err)
	}
	log.Successf("API key stored for %s", target)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	log := logger.New("logout")

	target, err := credentialHost()
	if err != nil {
		return err
	}

	if err := credentials.Delete(target); err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			log.Warnf("No API key stored for %s", target)
			return nil
		}
		return log.Errorf("failed to remove API key for %s: %w", target, err)
	}
	log.Successf("API key removed for %s", target)
	return nil
}

// credentialHost resolves the keyring entry name from --host, DISCOURSE_HOST,
// or an optional configuration file.
func credentialHost() (string, error) {
	var model *domain.Model
	if configFile != "" || source != "" {
		m, err := loadModel(false)
		if err != nil {
			return "", err
		}
		model = m
	}
	target := internal.ResolveHost(host, model)
	if target == "" {
		return "", apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "--host is required", nil)
	}
	if strings.Contains(target, "://") {
		return "", apperrors.NewAppError(apperrors.ErrCodeInvalidInput, fmt.Sprintf("host '%s' must not include a scheme", target), nil)
	}
	return target, nil
}

func readAPIKey(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
		key, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		return strings.TrimSpace(string(key)), err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
