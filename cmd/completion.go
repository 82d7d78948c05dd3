package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_cryptbox() {
    local cur prev words cword
    _init_completion || return

    local commands="encrypt decrypt totp init put get rm ls status diff passwd compact keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        totp)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-w --watch" -- "$cur"))
            else
                _filedir
            fi
            ;;
        put|diff)
            if [[ $cword -eq 2 ]]; then
                local names
                names=$(cryptbox ls 2>/dev/null | sed -n 's/^  \([^ ]*\) .*/\1/p')
                COMPREPLY=($(compgen -W "$names" -- "$cur"))
            else
                _filedir
            fi
            ;;
        get|rm)
            local names
            names=$(cryptbox ls 2>/dev/null | sed -n 's/^  \([^ ]*\) .*/\1/p')
            COMPREPLY=($(compgen -W "$names" -- "$cur"))
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _cryptbox cryptbox
`

const zshCompletion = `#compdef cryptbox

_cryptbox() {
    local -a commands
    commands=(
        'encrypt:Encrypt a string with a password'
        'decrypt:Decrypt an envelope with a password'
        'totp:Print the current TOTP code from a seed file'
        'init:Create a .cryptbox vault in current directory'
        'put:Store a named secret in the vault'
        'get:Print a stored secret'
        'rm:Remove entries from the vault'
        'ls:Show vault status'
        'status:Show vault status'
        'diff:Compare a stored entry with a local file'
        'passwd:Change vault password'
        'compact:Compact vault to reclaim disk space'
        'keyring:Manage the vault password in the OS keyring'
        'completion:Generate shell completions'
        'help:Show help for a command'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "$words[2]" in
        totp|put|diff)
            _files
            ;;
        keyring)
            _values 'action' save delete status
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        help)
            _describe 'command' commands
            ;;
    esac
}

_cryptbox "$@"
`

const fishCompletion = `complete -c cryptbox -f

set -l commands encrypt decrypt totp init put get rm ls status diff passwd compact keyring help completion

complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a encrypt -d 'Encrypt a string with a password'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a decrypt -d 'Decrypt an envelope with a password'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a totp -d 'Print the current TOTP code from a seed file'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a .cryptbox vault in current directory'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a put -d 'Store a named secret in the vault'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a get -d 'Print a stored secret'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove entries from the vault'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a ls -d 'Show vault status'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare a stored entry with a local file'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a passwd -d 'Change vault password'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact vault to reclaim disk space'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage the vault password in the OS keyring'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate shell completions'
complete -c cryptbox -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help for a command'

complete -c cryptbox -n "__fish_seen_subcommand_from totp" -s w -l watch -d 'Print a new code every period'
complete -c cryptbox -n "__fish_seen_subcommand_from keyring" -a 'save delete status'
complete -c cryptbox -n "__fish_seen_subcommand_from completion" -a 'bash zsh fish'
`
