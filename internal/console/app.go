package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xela07ax/sensor-alert-console/internal/api"
	"github.com/xela07ax/sensor-alert-console/internal/domain"
	"github.com/xela07ax/sensor-alert-console/internal/infra"
	"github.com/xela07ax/sensor-alert-console/internal/metrics"
	"github.com/xela07ax/sensor-alert-console/internal/notify"
	"github.com/xela07ax/sensor-alert-console/internal/refresh"
	"github.com/xela07ax/sensor-alert-console/internal/theme"
	"github.com/xela07ax/sensor-alert-console/internal/view"

	"go.uber.org/zap"
)

// App — контейнер консоли. Владеет хабом инвалидации (единственным
// источником истины о "свежести" данных) и собирает четыре вкладки.
// Колбек мутаций у всех один: инкремент версии хаба.
type App struct {
	client *api.Client
	hub    *refresh.Hub

	form      *view.RuleForm
	rules     *view.RuleList
	history   *view.HistoryView
	dashboard *view.DashboardView

	center *notify.Center
	themes *theme.Store
	cfg    *infra.Config
	logger *zap.Logger

	in  *bufio.Scanner
	out io.Writer
	tab string
	ctx context.Context
}

// NewApp собирает консоль со всеми зависимостями (Dependency Injection).
func NewApp(
	client *api.Client,
	hub *refresh.Hub,
	center *notify.Center,
	themes *theme.Store,
	cfg *infra.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	in io.Reader,
	out io.Writer,
) *App {
	a := &App{
		client: client,
		hub:    hub,
		center: center,
		themes: themes,
		cfg:    cfg,
		logger: logger.Named("console"),
		in:     bufio.NewScanner(in),
		out:    out,
		tab:    "dashboard",
	}

	a.form = view.NewRuleForm(client, center, a.invalidate, logger)
	a.rules = view.NewRuleList(client, center, a, a.invalidate, logger, m)
	a.history = view.NewHistoryView(client, cfg.History.Limit, center, logger, m)
	a.dashboard = view.NewDashboardView(client, center, logger, m)

	// Форма не подписчик: у нее нет данных для refetch
	hub.Subscribe(a.rules)
	hub.Subscribe(a.history)
	hub.Subscribe(a.dashboard)

	return a
}

// invalidate — тот самый единственный механизм, которым вкладки узнают
// о чужих мутациях: ровно один инкремент версии на операцию.
func (a *App) invalidate() {
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	a.hub.Invalidate(ctx)
}

// Confirm реализует блокирующий диалог подтверждения для списка правил.
func (a *App) Confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s (s/n): ", prompt)
	if !a.in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(a.in.Text())) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

// Run запускает прогрев, первоначальную загрузку вкладок и командный цикл.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	if err := WaitBackend(ctx, a.client, a.cfg.Warmup, a.out, a.logger); err != nil {
		// Не фатально: вкладки покажут свои ошибки, когда бекенд вернется
		fmt.Fprintln(a.out, "Backend indisponível no momento.")
	}

	fmt.Fprintln(a.out, "=== Sistema de Alertas ===")
	fmt.Fprintln(a.out, "Monitore sensores e receba notificações em tempo real")
	a.printHelp()

	// "Маунт" всех вкладок: первая публикация версии
	a.hub.Invalidate(ctx)
	a.hub.Wait()
	a.renderTab()

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintf(a.out, "\n[%s]> ", a.tab)
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		if quit := a.dispatch(line); quit {
			return nil
		}
	}
}

func (a *App) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "dashboard", "rules", "history":
		a.tab = cmd
		a.renderTab()

	case "create", "new":
		a.runCreate()

	case "edit":
		if id, ok := a.parseID(args); ok {
			a.runEdit(id)
		}

	case "toggle":
		if id, ok := a.parseID(args); ok {
			a.rules.Toggle(a.ctx, id)
			a.afterMutation()
		}

	case "delete":
		if id, ok := a.parseID(args); ok {
			a.rules.Delete(a.ctx, id)
			a.afterMutation()
		}

	case "show":
		if id, ok := a.parseID(args); ok {
			a.history.RenderDetail(a.out, id)
		}

	case "theme":
		a.runTheme(args)

	case "refresh":
		a.invalidate()
		a.hub.Wait()
		a.renderTab()

	case "help":
		a.printHelp()

	case "quit", "exit":
		return true

	default:
		fmt.Fprintf(a.out, "Comando desconhecido: %q (use \"help\")\n", cmd)
	}
	return false
}

// afterMutation дожидается рассылки инвалидации и перерисовывает вкладку,
// чтобы на экране уже были свежие данные.
func (a *App) afterMutation() {
	a.hub.Wait()
	a.renderTab()
}

func (a *App) renderTab() {
	fmt.Fprintf(a.out, "--- %s ---\n", a.tab)
	switch a.tab {
	case "rules":
		a.rules.Render(a.out)
	case "history":
		a.history.Render(a.out)
	default:
		a.dashboard.Render(a.out)
	}
}

func (a *App) runCreate() {
	a.form.StartCreate()
	a.form.SetDraft(a.promptDraft(a.form.Draft()))
	a.form.Submit(a.ctx)
	a.afterMutation()
}

func (a *App) runEdit(id int64) {
	rule, ok := a.rules.Rule(id)
	if !ok {
		fmt.Fprintf(a.out, "Regra %d não encontrada. Abra a aba \"rules\" e atualize.\n", id)
		return
	}
	a.form.StartEdit(rule)
	a.form.SetDraft(a.promptDraft(a.form.Draft()))
	a.form.Submit(a.ctx)
	a.afterMutation()
}

func (a *App) runTheme(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Tema: %s (efetivo: %s)\n", a.themes.Preference(), a.themes.Resolve())
		return
	}
	if err := a.themes.Set(theme.Scheme(args[0])); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Tema alterado para %s\n", args[0])
}

// promptDraft опрашивает поля формы; пустой ввод оставляет текущее значение.
// Поле "Valor Máximo" предлагается строго для интервальных условий.
func (a *App) promptDraft(d domain.RuleDraft) domain.RuleDraft {
	d.SensorType = a.promptString("Tipo de Sensor", d.SensorType)
	d.Metric = domain.Metric(a.promptString("Métrica (cpu/ram/temperatura/potencia)", string(d.Metric)))
	d.Condition = domain.Condition(a.promptString("Condição (greater_than/less_than/between/outside)", string(d.Condition)))

	valueLabel := "Valor Limite"
	if d.Condition.NeedsRange() {
		valueLabel = "Valor Mínimo"
	}
	d.ThresholdValue = a.promptString(valueLabel, d.ThresholdValue)
	if d.Condition.NeedsRange() {
		d.ThresholdMax = a.promptString("Valor Máximo", d.ThresholdMax)
	}

	d.RecipientEmail = a.promptString("Email do Destinatário", d.RecipientEmail)
	d.CooldownMinutes = a.promptInt("Cooldown (minutos)", d.CooldownMinutes)
	return d
}

func (a *App) promptString(label, current string) string {
	fmt.Fprintf(a.out, "%s [%s]: ", label, current)
	if !a.in.Scan() {
		return current
	}
	if text := strings.TrimSpace(a.in.Text()); text != "" {
		return text
	}
	return current
}

func (a *App) promptInt(label string, current int) int {
	raw := a.promptString(label, strconv.Itoa(current))
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(a.out, "Valor inválido %q, mantendo %d\n", raw, current)
		return current
	}
	return n
}

func (a *App) parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Informe o id da regra, ex: toggle 3")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Id inválido: %q\n", args[0])
		return 0, false
	}
	return id, true
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Abas: dashboard | rules | history")
	fmt.Fprintln(a.out, "Comandos: create, edit <id>, toggle <id>, delete <id>, show <id>, theme [light|dark|system], refresh, help, quit")
}
