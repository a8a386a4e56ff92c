package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/mailer"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/notify"
	"github.com/wneessen/go-mail"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 创建邮件客户端
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("无法创建邮件客户端", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// 验证邮件客户端是否连接成功
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("无法连接到邮件服务器", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		notify.QueueName,
		true,  // 持久化
		false, // 没有消费者时不自动删除
		false, // 允许多个消费者
		false,
		nil,
	)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	// 每次只取一条，发送完再取下一条
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Error("无法设置预取数量", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // 由 RabbitMQ 自动分配消费者标识
		false, // 手动确认
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("无法消费消息", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-msgs:
				if !ok {
					logger.Warn("消息通道已关闭")
					return
				}
				handleDelivery(ctx, logger, cfg, client, delivery)
			}
		}
	}()

	logger.Info("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	slog.Info("正在关闭 mail worker...")
	cancel()
	wg.Wait()
	slog.Info("mail worker 已成功关闭")
}

func handleDelivery(ctx context.Context, logger *slog.Logger, cfg *config.Config, client *mail.Client, delivery amqp.Delivery) {
	logger.Info("收到消息", slog.String("messageID", delivery.MessageId), slog.String("type", delivery.Type))

	m, err := mailer.Decode(delivery.Body)
	if err != nil {
		logger.Error("邮件信息反序列化失败", slog.String("error", err.Error()))
		_ = delivery.Nack(false, false)
		return
	}

	msg, err := mailer.Build(cfg.Email.SMTP.Username, m)
	if err != nil {
		logger.Error("无法构建邮件", slog.String("type", string(m.Type)), slog.String("error", err.Error()))
		_ = delivery.Nack(false, false)
		return
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		logger.Error("邮件发送失败", slog.String("error", err.Error()))
		_ = delivery.Nack(false, true) // 将消息重新入队
		return
	}

	_ = delivery.Ack(false)
}
