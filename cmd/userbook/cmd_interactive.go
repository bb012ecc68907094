// Package main implements the interactive menu, the default mode when
// userbook runs without a subcommand. One operation at a time: the menu
// prompts, validates, calls the store, renders the result, and loops.
// Errors are printed and the loop continues; only a corrupt snapshot at
// startup is fatal.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"userbook/cmd/userbook/ui"
	"userbook/internal/audit"
	"userbook/internal/config"
	"userbook/internal/types"
	"userbook/internal/validate"
)

const menuWidth = 60

// runInteractive drives the menu loop until the user quits or the input
// stream ends.
func runInteractive() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted")
		cancel()
	}()

	// Live config reload. The watcher goroutine only retunes the atomic
	// log level and queues the config; the menu loop applies the theme
	// itself between operations, so rendering state stays single-threaded.
	reloadCh := make(chan *config.Config, 1)
	watcher, err := config.NewWatcher(baseDir, logger, func(cfg *config.Config) {
		logLevel.SetLevel(levelFor(cfg.Logging.Level))
		select {
		case reloadCh <- cfg:
		default:
		}
	})
	if err == nil {
		if err := watcher.Start(ctx); err == nil {
			defer watcher.Stop()
		}
	} else {
		logger.Warn("config watcher unavailable", zap.Error(err))
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println(a.styles.Title.Render("userbook"))
	fmt.Println(a.styles.Muted.Render(fmt.Sprintf("%d users loaded from %s", a.store.Len(), a.cfg.DataFile)))

	for {
		if ctx.Err() != nil {
			return nil
		}

		select {
		case cfg := <-reloadCh:
			a.styles = ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))
		default:
		}

		printMenu(a)
		choice, err := readLine(reader, a, "Choose an option: ")
		if err != nil {
			return nil // EOF or interrupt: leave quietly
		}

		switch choice {
		case "1":
			a.menuCreate(reader)
		case "2":
			a.menuUpdate(reader)
		case "3":
			a.menuDelete(reader)
		case "4":
			a.menuList()
		case "5", "q", "quit", "exit":
			fmt.Println(a.styles.Muted.Render("Bye."))
			return nil
		default:
			fmt.Println(a.styles.Warning.Render("Invalid option, try again."))
		}
		fmt.Println()
	}
}

func printMenu(a *app) {
	fmt.Println(a.styles.Muted.Render(strings.Repeat("-", menuWidth)))
	fmt.Println(a.styles.Bold.Render("Menu:"))
	fmt.Println("  1. Add a new user")
	fmt.Println("  2. Update an existing user")
	fmt.Println("  3. Delete a user")
	fmt.Println("  4. Show all users")
	fmt.Println("  5. Quit")
	fmt.Println(a.styles.Muted.Render(strings.Repeat("-", menuWidth)))
}

func (a *app) menuCreate(reader *bufio.Reader) {
	user, err := promptUser(reader, a)
	if err != nil {
		a.printErr(err)
		return
	}

	start := time.Now()
	created, err := a.store.Create(user)
	a.recordAudit(audit.EventCreate, user.ID, start, err)
	if err != nil {
		a.printErr(describeStoreErr(err, user.ID))
		return
	}
	fmt.Println(a.styles.Success.Render(fmt.Sprintf("User created with id %s", created.ID)))
}

func (a *app) menuUpdate(reader *bufio.Reader) {
	id, err := promptID(reader, a)
	if err != nil {
		a.printErr(err)
		return
	}

	current, err := a.store.Get(id)
	if err != nil {
		a.printErr(describeStoreErr(err, id))
		return
	}
	fmt.Println(a.styles.Muted.Render("Current record:"))
	printUser(a.styles, current)

	fmt.Println(a.styles.Muted.Render("Enter the replacement record (the id must stay the same):"))
	user, err := promptUser(reader, a)
	if err != nil {
		a.printErr(err)
		return
	}

	start := time.Now()
	updated, err := a.store.Update(id, user)
	a.recordAudit(audit.EventUpdate, id, start, err)
	if err != nil {
		a.printErr(describeStoreErr(err, id))
		return
	}
	fmt.Println(a.styles.Success.Render(fmt.Sprintf("User %s updated", updated.ID)))
}

func (a *app) menuDelete(reader *bufio.Reader) {
	id, err := promptID(reader, a)
	if err != nil {
		a.printErr(err)
		return
	}

	start := time.Now()
	err = a.store.Delete(id)
	a.recordAudit(audit.EventDelete, id, start, err)
	if err != nil {
		a.printErr(describeStoreErr(err, id))
		return
	}
	fmt.Println(a.styles.Success.Render("User deleted."))
}

func (a *app) menuList() {
	fmt.Print(renderUserTable(a.styles, a.store.List()))
}

// promptUser collects and validates the five record fields one at a time.
// The first invalid field aborts the whole entry, matching the one-shot
// validation the scripted commands get from flags.
func promptUser(reader *bufio.Reader, a *app) (types.User, error) {
	id, err := readLine(reader, a, "Id (11 digits): ")
	if err != nil {
		return types.User{}, err
	}
	name, err := readLine(reader, a, "Full name (10-100 characters): ")
	if err != nil {
		return types.User{}, err
	}
	email, err := readLine(reader, a, "Email: ")
	if err != nil {
		return types.User{}, err
	}
	birth, err := readLine(reader, a, "Birth date (DD-MM-YYYY): ")
	if err != nil {
		return types.User{}, err
	}
	role, err := readLine(reader, a, "Role (Admin/User/Guest): ")
	if err != nil {
		return types.User{}, err
	}

	return validate.User(id, name, email, birth, role)
}

// promptID reads and validates a lookup id.
func promptID(reader *bufio.Reader, a *app) (string, error) {
	id, err := readLine(reader, a, "User id: ")
	if err != nil {
		return "", err
	}
	return validate.ID(id)
}

// readLine prints a prompt and reads one trimmed line. io.EOF propagates so
// the loop can exit when input ends.
func readLine(reader *bufio.Reader, a *app, prompt string) (string, error) {
	fmt.Print(a.styles.Prompt.Render(prompt))
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) printErr(err error) {
	fmt.Println(a.styles.Error.Render("Error: " + err.Error()))
}
