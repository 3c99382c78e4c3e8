package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"event-ping-bot/internal/domain"
)

// Функции ниже переводят сырые события discordgo в domain.InboundEvent.
// Отсутствующие поля остаются пустыми, подстановки делает форматтер журнала.

func userTag(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	// у новых аккаунтов дискриминатор "0"
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

func userID(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}

func isBot(u *discordgo.User) bool {
	return u != nil && u.Bot
}

func messageCreated(id string, m *discordgo.Message, channelName string) domain.MessageCreated {
	return domain.MessageCreated{
		EventID:      id,
		AuthorID:     userID(m.Author),
		AuthorTag:    userTag(m.Author),
		AuthorIsBot:  isBot(m.Author),
		IsWebhook:    m.WebhookID != "",
		ChannelID:    m.ChannelID,
		ChannelName:  channelName,
		Content:      m.Content,
		GuildPresent: m.GuildID != "",
	}
}

// messageEdited использует кэш состояния для старого текста. Без кэша before
// пуст, и правка попадёт в журнал как изменение с «*No text*».
func messageEdited(id string, m *discordgo.Message, before *discordgo.Message) domain.MessageEdited {
	author := m.Author
	if author == nil && before != nil {
		author = before.Author
	}
	ev := domain.MessageEdited{
		EventID:      id,
		AuthorID:     userID(author),
		AuthorTag:    userTag(author),
		AuthorIsBot:  isBot(author),
		ChannelID:    m.ChannelID,
		After:        m.Content,
		GuildPresent: m.GuildID != "",
	}
	if before != nil {
		ev.Before = before.Content
		// частичное обновление (например, только эмбеды) приходит без автора и текста
		if m.Author == nil && m.Content == "" {
			ev.After = before.Content
		}
	}
	return ev
}

func messageDeleted(id string, m *discordgo.Message, before *discordgo.Message) domain.MessageDeleted {
	ev := domain.MessageDeleted{
		EventID:      id,
		ChannelID:    m.ChannelID,
		GuildPresent: m.GuildID != "",
	}
	if before != nil {
		ev.AuthorID = userID(before.Author)
		ev.AuthorTag = userTag(before.Author)
		ev.AuthorIsBot = isBot(before.Author)
		ev.Content = before.Content
	}
	return ev
}

func memberJoined(id string, m *discordgo.Member) domain.MemberJoined {
	return domain.MemberJoined{EventID: id, UserTag: userTag(m.User), GuildID: m.GuildID}
}

func memberLeft(id string, m *discordgo.Member) domain.MemberLeft {
	return domain.MemberLeft{EventID: id, UserTag: userTag(m.User), GuildID: m.GuildID}
}

func connectionChanged(id string, state domain.ConnectionState, at time.Time) domain.ConnectionStateChanged {
	return domain.ConnectionStateChanged{EventID: id, State: state, At: at}
}
