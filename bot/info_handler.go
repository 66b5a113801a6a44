package bot

import (
	"fmt"
	"time"

	"frogbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latency := s.HeartbeatLatency().Milliseconds()
	if err := common.RespondWithMessage(s, i, fmt.Sprintf("Pong! Gateway latency: %d ms", latency), false); err != nil {
		log.Errorf("Error responding to ping: %v", err)
	}
}

func (b *Bot) handleUptime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title: "FrogBot Uptime",
		Color: ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Bot Uptime",
				Value: common.FormatUptime(time.Since(b.startTime)),
			},
		},
	}
	if !b.readyTime.IsZero() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Ready Uptime",
			Value: common.FormatUptime(time.Since(b.readyTime)),
		})
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to uptime: %v", err)
	}
}

func (b *Bot) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	members := 0
	for _, guild := range s.State.Guilds {
		members += guild.MemberCount
	}

	embed := &discordgo.MessageEmbed{
		Title:       "FrogBot Information",
		Description: "Character sheet approval bot for D&D and personal servers.",
		Color:       ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "Members", Value: fmt.Sprintf("%d", members), Inline: true},
			{Name: "Started", Value: common.FormatDiscordTimestamp(b.startTime, "F"), Inline: false},
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to info: %v", err)
	}
}
