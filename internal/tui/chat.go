package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-chat-client/internal/service"
	"github.com/MKhiriev/go-chat-client/internal/store"
	"github.com/MKhiriev/go-chat-client/models"
)

const (
	sidebarWidth = 24
	chromeHeight = 8 // заголовок, строка ввода, подсказки, рамки
	viewTickRate = 500 * time.Millisecond
)

// chatModel is the authenticated main screen: the conversation sidebar, the
// message viewport and the prompt input. All state it renders is owned by
// the services; the model pulls a fresh snapshot on every tick so changes
// made by background refreshes show up without user input.
type chatModel struct {
	ctx      context.Context
	services *service.ClientServices
	storages *store.ClientStorages

	themeName string
	styles    themeStyles

	vp    viewport.Model
	input textinput.Model
	ready bool

	width  int
	height int

	mode    models.PromptMode
	publish bool

	chats      []models.Chat
	selectedID string
	messages   []models.Message
	lastCount  int
	sending    bool

	status string
	errMsg string

	logout bool
}

func newChatModel(ctx context.Context, services *service.ClientServices, storages *store.ClientStorages, theme string) chatModel {
	input := textinput.New()
	input.Placeholder = "Введите сообщение..."
	input.CharLimit = 4000
	input.Focus()

	return chatModel{
		ctx:       ctx,
		services:  services,
		storages:  storages,
		themeName: theme,
		styles:    stylesFor(theme),
		input:     input,
		mode:      models.PromptModeText,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.cmdTick())
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.syncFromServices()
		return m, nil

	case viewTickMsg:
		m.syncFromServices()
		if m.services.Session.State() != models.SessionAuthenticated {
			// принудительный выход: сессия отозвана сервером
			m.logout = true
			return m, tea.Quit
		}
		return m, m.cmdTick()

	case exchangeDoneMsg:
		m.sending = false
		if msg.exchange == nil {
			m.status = "Сообщение не отправлено: нет выбранного чата"
			m.syncFromServices()
			return m, nil
		}
		if msg.exchange.State == service.ExchangeFailed {
			// текст не возвращается в поле ввода: неудачные промпты
			// не ставятся в повтор
			m.errMsg = humanizeAdapterError(msg.exchange.Err)
		}
		m.syncFromServices()
		return m, nil

	case chatCreatedMsg:
		if msg.err != nil {
			m.errMsg = humanizeAdapterError(msg.err)
		} else {
			m.status = "Создан новый чат"
			m.errMsg = ""
		}
		m.syncFromServices()
		return m, nil

	case chatDeletedMsg:
		if msg.err != nil {
			m.errMsg = humanizeAdapterError(msg.err)
		} else {
			m.status = "Чат удалён"
			m.errMsg = ""
		}
		m.syncFromServices()
		return m, nil

	case chatsRefreshedMsg:
		if msg.err != nil {
			m.errMsg = humanizeAdapterError(msg.err)
		} else {
			m.status = "Список чатов обновлён"
			m.errMsg = ""
		}
		m.syncFromServices()
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.errMsg = "Не удалось сохранить тему: " + msg.err.Error()
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+l":
		m.services.Session.Logout()
		m.logout = true
		return m, tea.Quit

	case "ctrl+n":
		return m, m.cmdNewChat()

	case "ctrl+d":
		if m.selectedID == "" {
			m.status = "Нет выбранного чата"
			return m, nil
		}
		return m, m.cmdDeleteChat(m.selectedID)

	case "ctrl+r":
		return m, m.cmdRefresh()

	case "ctrl+o":
		m.selectNeighbor(+1)
		return m, nil

	case "ctrl+p":
		m.selectNeighbor(-1)
		return m, nil

	case "ctrl+g":
		if m.mode == models.PromptModeText {
			m.mode = models.PromptModeImage
		} else {
			m.mode = models.PromptModeText
			m.publish = false
		}
		return m, nil

	case "ctrl+b":
		if m.mode == models.PromptModeImage {
			m.publish = !m.publish
		}
		return m, nil

	case "ctrl+t":
		if m.themeName == "dark" {
			m.themeName = "light"
		} else {
			m.themeName = "dark"
		}
		m.styles = stylesFor(m.themeName)
		m.syncFromServices()
		return m, m.cmdSaveTheme(m.themeName)

	case "ctrl+y":
		text, ok := m.lastAssistantReply()
		if !ok {
			m.status = "Нечего копировать"
			return m, nil
		}
		if err := clipboard.WriteAll(text); err != nil {
			m.errMsg = fmt.Sprintf("Ошибка копирования: %v", err)
			return m, nil
		}
		m.status = "Скопировано"
		return m, nil

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case "enter":
		if m.sending {
			return m, nil
		}
		prompt := strings.TrimSpace(m.input.Value())
		if prompt == "" {
			return m, nil
		}

		m.sending = true
		m.status = ""
		m.errMsg = ""
		m.input.Reset()
		return m, m.cmdSubmit(prompt)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	if !m.ready {
		return "Загрузка..."
	}

	title := m.styles.title.Render("AI CHAT")
	if user, ok := m.services.Session.CurrentUser(); ok {
		title += m.styles.help.Render("  │  " + user.Email)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.vp.View())

	promptLine := m.renderPromptLine()

	var notice string
	switch {
	case m.errMsg != "":
		notice = m.styles.errText.Render("Ошибка: " + m.errMsg)
	case m.status != "":
		notice = m.styles.status.Render(m.status)
	}

	help := m.styles.help.Render(
		"enter: отправить │ ctrl+g: режим │ ctrl+b: публикация │ ctrl+n: новый чат │ ctrl+d: удалить │ " +
			"ctrl+o/ctrl+p: чаты │ ctrl+r: обновить │ ctrl+y: копировать │ ctrl+t: тема │ ctrl+l: выход из аккаунта │ ctrl+c: выход",
	)

	parts := []string{title, body, promptLine}
	if notice != "" {
		parts = append(parts, notice)
	}
	parts = append(parts, help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m chatModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Чаты"))
	b.WriteString("\n")

	if len(m.chats) == 0 {
		b.WriteString(m.styles.help.Render("пусто"))
	}

	for _, chat := range m.chats {
		name := chat.Name
		if name == "" {
			name = "Без названия"
		}
		line := fitText(name, sidebarWidth-4)
		if chat.ID == m.selectedID {
			b.WriteString(m.styles.selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return m.styles.sidebar.Width(sidebarWidth).Height(m.vp.Height).Render(b.String())
}

func (m chatModel) renderPromptLine() string {
	modeLabel := "текст"
	if m.mode == models.PromptModeImage {
		modeLabel = "картинка"
		if m.publish {
			modeLabel += "+публикация"
		}
	}

	sendLabel := ""
	if m.sending {
		sendLabel = " ⏳"
	}

	return fmt.Sprintf("[%s]%s %s", modeLabel, sendLabel, m.input.View())
}

// syncFromServices pulls the current snapshot out of the services and
// rebuilds the viewport content. The viewport scrolls to the bottom only
// when the number of displayed messages changed, so manual scrollback
// survives ticks.
func (m *chatModel) syncFromServices() {
	m.chats = m.services.Chats.Chats()
	if selected, ok := m.services.Chats.Selected(); ok {
		m.selectedID = selected.ID
	} else {
		m.selectedID = ""
	}

	m.messages = m.services.Exchange.Messages()
	if !m.sending {
		m.sending = m.services.Exchange.Sending()
	}

	if !m.ready {
		return
	}

	m.vp.SetContent(m.renderMessages())
	if len(m.messages) != m.lastCount {
		m.lastCount = len(m.messages)
		m.vp.GotoBottom()
	}
}

func (m *chatModel) renderMessages() string {
	if len(m.messages) == 0 {
		return m.styles.help.Render("Сообщений пока нет. Напишите что-нибудь!")
	}

	contentWidth := m.vp.Width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	var b strings.Builder
	for _, msg := range m.messages {
		label := "Вы"
		style := m.styles.userMsg
		if msg.Role == models.RoleAssistant {
			label = "ИИ"
			style = m.styles.assistant
		}

		content := msg.Content
		if msg.IsImage {
			content = "[изображение] " + content
		}

		b.WriteString(m.styles.title.Render(label))
		b.WriteString("\n")
		b.WriteString(style.Width(contentWidth).Render(content))
		b.WriteString("\n\n")
	}

	if m.sending {
		b.WriteString(m.styles.help.Render("ИИ печатает..."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *chatModel) resize() {
	vpWidth := m.width - sidebarWidth - 2
	if vpWidth < 20 {
		vpWidth = 20
	}
	vpHeight := m.height - chromeHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.vp = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.vp.Width = vpWidth
		m.vp.Height = vpHeight
	}
	m.input.Width = m.width - 20
}

func (m *chatModel) selectNeighbor(step int) {
	if len(m.chats) == 0 {
		return
	}

	idx := 0
	for i := range m.chats {
		if m.chats[i].ID == m.selectedID {
			idx = i
			break
		}
	}

	idx = (idx + step + len(m.chats)) % len(m.chats)
	if err := m.services.Chats.Select(m.chats[idx].ID); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.syncFromServices()
	m.vp.GotoBottom()
}

func (m chatModel) lastAssistantReply() (string, bool) {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == models.RoleAssistant {
			return m.messages[i].Content, true
		}
	}
	return "", false
}

func (m chatModel) cmdTick() tea.Cmd {
	return tea.Tick(viewTickRate, func(time.Time) tea.Msg { return viewTickMsg{} })
}

func (m chatModel) cmdSubmit(prompt string) tea.Cmd {
	ctx := m.ctx
	exchange := m.services.Exchange
	mode := m.mode
	publish := m.publish

	return func() tea.Msg {
		return exchangeDoneMsg{exchange: exchange.Submit(ctx, prompt, mode, publish)}
	}
}

func (m chatModel) cmdNewChat() tea.Cmd {
	ctx := m.ctx
	chats := m.services.Chats

	return func() tea.Msg {
		_, err := chats.Create(ctx)
		return chatCreatedMsg{err: err}
	}
}

func (m chatModel) cmdDeleteChat(id string) tea.Cmd {
	ctx := m.ctx
	chats := m.services.Chats

	return func() tea.Msg {
		return chatDeletedMsg{err: chats.Delete(ctx, id)}
	}
}

func (m chatModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	chats := m.services.Chats

	return func() tea.Msg {
		return chatsRefreshedMsg{err: chats.Refresh(ctx)}
	}
}

func (m chatModel) cmdSaveTheme(theme string) tea.Cmd {
	ctx := m.ctx
	credentials := m.storages.Credentials

	return func() tea.Msg {
		return themeSavedMsg{theme: theme, err: credentials.SaveTheme(ctx, theme)}
	}
}
