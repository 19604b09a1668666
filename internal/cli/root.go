package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	st := a.session.Current()
	if st.IsAuthenticated {
		return fmt.Sprintf("(%s)", st.User.Username)
	}
	return ""
}

func (a *App) help() {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: articles, show, add, edit, delete, categories, addcat, editcat, delcat, dashboard, exportcsv, exportpdf, whoami, about, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: articles, show, about, register, login, exit")
	}
}

// Root runs the command loop. Protected commands go through requireAuth,
// which sends signed-out users to the login screen instead.
func (a *App) Root(ctx context.Context) {
	a.runLoop(ctx, bufio.NewScanner(os.Stdin))
}

func (a *App) runLoop(ctx context.Context, scanner *bufio.Scanner) {
	fmt.Fprintln(a.out, "Welcome to Nomad Tales (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "nt %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "about":
			a.About()

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.requireAuth(a.Logout)(ctx)
		case "whoami":
			_ = a.requireAuth(a.Profile)(ctx)

		case "articles":
			_ = a.Articles(ctx, args)
		case "show":
			_ = a.ShowArticle(ctx, args)
		case "add":
			_ = a.requireAuth(a.AddArticle)(ctx)
		case "edit":
			_ = a.requireAuth(func(ctx context.Context) error { return a.EditArticle(ctx, args) })(ctx)
		case "delete":
			_ = a.requireAuth(func(ctx context.Context) error { return a.DeleteArticle(ctx, args) })(ctx)

		case "categories":
			_ = a.requireAuth(a.Categories)(ctx)
		case "addcat":
			_ = a.requireAuth(a.AddCategory)(ctx)
		case "editcat":
			_ = a.requireAuth(func(ctx context.Context) error { return a.EditCategory(ctx, args) })(ctx)
		case "delcat":
			_ = a.requireAuth(func(ctx context.Context) error { return a.DeleteCategory(ctx, args) })(ctx)

		case "dashboard":
			_ = a.requireAuth(a.Dashboard)(ctx)
		case "exportcsv":
			_ = a.requireAuth(a.ExportCSV)(ctx)
		case "exportpdf":
			_ = a.requireAuth(a.ExportPDF)(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
