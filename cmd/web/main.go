package main

import (
	_ "embed"
	"fmt"
	"html"
	"net"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tomz197/duel/internal/config"
	"github.com/tomz197/duel/internal/logging"
)

//go:embed index.html
var htmlPage string

func main() {
	cfg, roster, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	cfg.Logging.File = ""
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	host := config.GetEnv("WEB_HOST", cfg.Web.Host)
	port := config.GetEnv("WEB_PORT", cfg.Web.Port)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", cfg.Web.DisplayHost)
	sshPort := config.GetEnv("SSH_PORT", cfg.SSH.Port)

	page := renderPage(htmlPage, sshHost, sshPort, roster)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", zap.String("url", "http://"+addr))
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// renderPage fills the landing page placeholders: the ssh command and one
// list item per archetype.
func renderPage(tmpl, sshHost, sshPort string, roster *config.Roster) string {
	command := "ssh " + sshHost
	if sshPort != "22" {
		command = fmt.Sprintf("ssh -p %s %s", sshPort, sshHost)
	}

	var list strings.Builder
	for i, a := range roster.Archetypes {
		fmt.Fprintf(&list, `<li><span style="color:%s">%d %s</span> speed %g, shot cost %g, recharge %g, bullet %g</li>`,
			html.EscapeString(a.Color), i+1, html.EscapeString(a.Name), a.Speed, a.ShotCost, a.Recharge, a.BulletSize)
		list.WriteByte('\n')
	}

	return strings.NewReplacer(
		"{{.SSHCommand}}", html.EscapeString(command),
		"{{.Archetypes}}", list.String(),
	).Replace(tmpl)
}
