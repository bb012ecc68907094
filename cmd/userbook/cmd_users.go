// Package main implements the scripted CRUD subcommands.
// Each one opens the store, performs a single operation, and exits; the
// interactive menu covers the same ground for manual use.
package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"userbook/cmd/userbook/ui"
	"userbook/internal/audit"
	"userbook/internal/store"
	"userbook/internal/types"
	"userbook/internal/validate"
)

// Field flags shared by add and update.
var (
	flagName  string
	flagEmail string
	flagBirth string
	flagRole  string
)

var addCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a new user record",
	Long: `Adds a user record. All fields are required and validated:

  id     11 digits
  name   10-100 characters
  email  valid address ending in .com or .br, 15-50 characters
  birth  DD-MM-YYYY, year 1909-2024
  role   Admin, User, or Guest

Example:
  userbook add 12345678901 --name "Maria da Silva" --email maria.silva@example.com --birth 15-05-1995 --role User`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user record",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a user record",
	Long: `Replaces every field of an existing record. The id itself cannot change;
pass the current id and the new values for the remaining fields.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a user record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all user records",
	RunE:  runList,
}

func runAdd(cmd *cobra.Command, args []string) error {
	user, err := validate.User(args[0], flagName, flagEmail, flagBirth, flagRole)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	start := time.Now()
	created, err := a.store.Create(user)
	a.recordAudit(audit.EventCreate, user.ID, start, err)
	if err != nil {
		return describeStoreErr(err, user.ID)
	}

	fmt.Println(a.styles.Success.Render(fmt.Sprintf("Created user %s (%s)", created.ID, created.FullName)))
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := validate.ID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	user, err := a.store.Get(id)
	if err != nil {
		return describeStoreErr(err, id)
	}

	printUser(a.styles, user)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	user, err := validate.User(args[0], flagName, flagEmail, flagBirth, flagRole)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	start := time.Now()
	updated, err := a.store.Update(user.ID, user)
	a.recordAudit(audit.EventUpdate, user.ID, start, err)
	if err != nil {
		return describeStoreErr(err, user.ID)
	}

	fmt.Println(a.styles.Success.Render(fmt.Sprintf("Updated user %s", updated.ID)))
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := validate.ID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	start := time.Now()
	err = a.store.Delete(id)
	a.recordAudit(audit.EventDelete, id, start, err)
	if err != nil {
		return describeStoreErr(err, id)
	}

	fmt.Println(a.styles.Success.Render(fmt.Sprintf("Deleted user %s", id)))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	users := a.store.List()
	fmt.Print(renderUserTable(a.styles, users))
	return nil
}

// describeStoreErr rewraps a store error with the id it concerned, so the
// message stands alone on the terminal.
func describeStoreErr(err error, id string) error {
	switch {
	case errors.Is(err, store.ErrDuplicateID):
		return fmt.Errorf("user %s already exists", id)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("user %s not found", id)
	case errors.Is(err, store.ErrIDImmutable):
		return fmt.Errorf("the id of user %s cannot be changed", id)
	}
	return err
}

// printUser renders one record as a field list.
func printUser(styles ui.Styles, user types.User) {
	today := types.DateOf(time.Now())
	fmt.Println(styles.Title.Render("User " + user.ID))
	fmt.Printf("  %s %s\n", styles.Muted.Render("Name: "), styles.Body.Render(user.FullName))
	fmt.Printf("  %s %s\n", styles.Muted.Render("Email:"), styles.Body.Render(user.Email))
	fmt.Printf("  %s %s (%d years)\n", styles.Muted.Render("Birth:"), styles.Body.Render(user.Birth.String()), user.Age(today))
	fmt.Printf("  %s %s\n", styles.Muted.Render("Role: "), styles.Body.Render(string(user.Role)))
}

// renderUserTable renders the full collection sorted by id.
func renderUserTable(styles ui.Styles, users map[string]types.User) string {
	if len(users) == 0 {
		return styles.Muted.Render("No users registered.") + "\n"
	}

	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	today := types.DateOf(time.Now())
	table := ui.NewTable("Users", "ID", "Name", "Email", "Birth", "Age", "Role")
	for _, id := range ids {
		u := users[id]
		table.AddRow(u.ID, u.FullName, u.Email, u.Birth.String(), fmt.Sprintf("%d", u.Age(today)), string(u.Role))
	}
	return table.View(styles) + styles.Muted.Render(fmt.Sprintf("Total: %d users", len(users))) + "\n"
}

func init() {
	for _, cmd := range []*cobra.Command{addCmd, updateCmd} {
		cmd.Flags().StringVar(&flagName, "name", "", "full name (10-100 characters)")
		cmd.Flags().StringVar(&flagEmail, "email", "", "email address")
		cmd.Flags().StringVar(&flagBirth, "birth", "", "birth date, DD-MM-YYYY")
		cmd.Flags().StringVar(&flagRole, "role", "", "Admin, User, or Guest")
		_ = cmd.MarkFlagRequired("name")
		_ = cmd.MarkFlagRequired("email")
		_ = cmd.MarkFlagRequired("birth")
		_ = cmd.MarkFlagRequired("role")
	}

	rootCmd.AddCommand(addCmd, getCmd, updateCmd, removeCmd, listCmd)
}
