package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/live-labs/cryptbox/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "encrypt":
		runEncrypt(os.Args[2:])
	case "decrypt":
		runDecrypt(os.Args[2:])
	case "totp":
		runTotp(ctx, os.Args[2:])
	case "init":
		runInit(os.Args[2:])
	case "put":
		runPut(os.Args[2:])
	case "get":
		runGet(os.Args[2:])
	case "rm":
		runRm(os.Args[2:])
	case "ls", "status":
		runStatus(os.Args[2:])
	case "diff":
		runDiff(os.Args[2:])
	case "passwd":
		runPasswd(os.Args[2:])
	case "compact":
		runCompact(os.Args[2:])
	case "keyring":
		runKeyring(os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runEncrypt(args []string) {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Encrypt(fs.Args())
}

func runDecrypt(args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Decrypt(fs.Args())
}

func runTotp(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("totp", flag.ExitOnError)
	watchShort := fs.Bool("w", false, "Print a new code every period")
	watchLong := fs.Bool("watch", false, "Print a new code every period")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	seedPath := ""
	if len(fs.Args()) > 0 {
		seedPath = fs.Args()[0]
	}

	cmd.Totp(ctx, seedPath, *watchShort || *watchLong)
}

func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Init()
}

func runPut(args []string) {
	fs := flag.NewFlagSet("put", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: cryptbox put <name> [file]")
		os.Exit(1)
	}
	file := ""
	if len(fs.Args()) > 1 {
		file = fs.Args()[1]
	}

	cmd.Put(fs.Args()[0], file)
}

func runGet(args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: cryptbox get <name>")
		os.Exit(1)
	}

	cmd.Get(fs.Args()[0])
}

func runRm(args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Remove(fs.Args())
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Status()
}

func runDiff(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if len(fs.Args()) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: cryptbox diff <name> <file>")
		os.Exit(1)
	}

	cmd.Diff(fs.Args()[0], fs.Args()[1])
}

func runPasswd(args []string) {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Passwd()
}

func runCompact(args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Compact()
}

func runKeyring(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: cryptbox keyring <save|delete|status>")
		os.Exit(1)
	}

	switch args[0] {
	case "save":
		cmd.KeyringSave()
	case "delete":
		cmd.KeyringDelete()
	case "status":
		cmd.KeyringStatus()
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring action: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: cryptbox keyring <save|delete|status>")
		os.Exit(1)
	}
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: cryptbox completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("cryptbox - Personal security toolbox")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cryptbox <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  encrypt     Encrypt a string with a password")
	fmt.Println("  decrypt     Decrypt an envelope with a password")
	fmt.Println("  totp        Print the current TOTP code from a seed file")
	fmt.Println("  init        Create a .cryptbox vault in current directory")
	fmt.Println("  put         Store a named secret in the vault")
	fmt.Println("  get         Print a stored secret")
	fmt.Println("  rm          Remove entries from the vault")
	fmt.Println("  ls, status  Show vault status")
	fmt.Println("  diff        Compare a stored entry with a local file")
	fmt.Println("  passwd      Change vault password")
	fmt.Println("  compact     Compact vault to reclaim disk space")
	fmt.Println("  keyring     Manage the vault password in the OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  cryptbox encrypt \"hello world\"   # Encrypt a string")
	fmt.Println("  cat seed.txt | cryptbox encrypt  # Encrypt piped data")
	fmt.Println("  cryptbox totp --watch            # Follow TOTP codes")
	fmt.Println("  cryptbox init                    # Create new vault")
	fmt.Println("  cryptbox put github-token        # Store a secret from stdin")
	fmt.Println()
	fmt.Println("Use 'cryptbox help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "encrypt":
		fmt.Println("cryptbox encrypt [<string>]")
		fmt.Println()
		fmt.Println("Encrypts a string with a password and prints a base64 envelope.")
		fmt.Println("The password is prompted twice and never stored anywhere.")
		fmt.Println("If no string is provided, input is read from piped stdin.")
		fmt.Println()
		fmt.Println("Set CRYPTBOX_PASSWORD to skip the prompt (scripts only).")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  cryptbox encrypt \"api key value\"")
		fmt.Println("  cat seed.txt | cryptbox encrypt > seed.enc")
	case "decrypt":
		fmt.Println("cryptbox decrypt [<envelope>]")
		fmt.Println()
		fmt.Println("Decrypts a base64 envelope and prints the plaintext.")
		fmt.Println("Missing base64 padding is restored automatically.")
		fmt.Println("If no envelope is provided, input is read from piped stdin.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  cryptbox decrypt \"CAEnvelopeText...\"")
		fmt.Println("  cat seed.enc | cryptbox decrypt")
	case "totp":
		fmt.Println("cryptbox totp [-w|--watch] [<seedfile>]")
		fmt.Println()
		fmt.Println("Prints the current RFC 6238 one-time code from a base32 seed file")
		fmt.Println("(default: seed.txt). The seed file must have mode 0600 or 0400.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -w, --watch    Print a new code each time the period rolls over")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  cryptbox totp")
		fmt.Println("  cryptbox totp --watch ~/.config/mfa/github.seed")
	case "init":
		fmt.Println("cryptbox init")
		fmt.Println()
		fmt.Println("Creates a .cryptbox vault file in the current directory.")
		fmt.Println("Prompts for a password that will be used for encryption.")
		fmt.Println("The password is not stored anywhere - you must remember it.")
	case "put":
		fmt.Println("cryptbox put <name> [<file>]")
		fmt.Println()
		fmt.Println("Encrypts a secret and stores it in the vault under a name.")
		fmt.Println("The value comes from the file argument or piped stdin.")
		fmt.Println("Overwriting an existing entry prints a diff of what changes.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  cryptbox put github-token token.txt")
		fmt.Println("  echo -n \"s3cret\" | cryptbox put db-password")
	case "get":
		fmt.Println("cryptbox get <name>")
		fmt.Println()
		fmt.Println("Decrypts a stored entry and prints it to stdout.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  cryptbox get github-token")
	case "rm":
		fmt.Println("cryptbox rm <name> [name...]")
		fmt.Println()
		fmt.Println("Removes entries from the vault. Requires the vault password.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  cryptbox rm github-token db-password")
	case "ls", "status":
		fmt.Println("cryptbox status")
		fmt.Println()
		fmt.Println("Shows vault status: stored entry names, sizes, and timestamps.")
		fmt.Println("Does not require a password ('ls' is an alias).")
	case "diff":
		fmt.Println("cryptbox diff <name> <file>")
		fmt.Println()
		fmt.Println("Compares a stored entry with a local file and prints a unified diff.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  cryptbox diff totp-seed seed.txt")
	case "passwd":
		fmt.Println("cryptbox passwd")
		fmt.Println()
		fmt.Println("Changes the vault password.")
		fmt.Println("Requires both the current and new passwords.")
		fmt.Println("Re-encrypts all entries with the new password.")
	case "compact":
		fmt.Println("cryptbox compact")
		fmt.Println()
		fmt.Println("Compacts the .cryptbox database to reclaim unused disk space.")
		fmt.Println("This is automatically done after 'rm' and 'passwd' commands,")
		fmt.Println("but can be run manually if needed.")
		fmt.Println()
		fmt.Println("Does not require a password.")
	case "keyring":
		fmt.Println("cryptbox keyring <save|delete|status>")
		fmt.Println()
		fmt.Println("Manages the vault password in the OS keyring.")
		fmt.Println("  save    Verify and store the password in the keyring")
		fmt.Println("  delete  Remove the stored password")
		fmt.Println("  status  Check whether a password is stored")
	case "completion":
		fmt.Println("cryptbox completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(cryptbox completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(cryptbox completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  cryptbox completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
