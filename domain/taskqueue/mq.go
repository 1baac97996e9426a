package taskqueue

import (
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/utils"
)

/*
Queues between the controller and the workers.

	QueueArticleInput: SendSchema, one article to analyze
	QueueArticleOutput: ReceiveSchema, the analysis of one article
*/
const (
	QueueArticleInput  = "article_input"
	QueueArticleOutput = "article_output"
)

// AMQP message types, checked on delivery when the publisher set one.
const (
	messageTypeArticle = "ppaxe.article"
	messageTypeResult  = "ppaxe.result"
)

const defaultPrefetch = 1

// SendSchema asks a worker to analyze one article of a task.
type SendSchema struct {
	RequestID string `json:"request_id"`
	ArticleID uint   `json:"article_id"`
	TaskID    uint   `json:"task_id"`
	PMID      string `json:"pmid"`
	Text      string `json:"text"`
}

type ReceiveSchemaMention struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type ReceiveSchemaCandidate struct {
	Prot1    ReceiveSchemaMention `json:"prot1"`
	Prot2    ReceiveSchemaMention `json:"prot2"`
	Features []float64            `json:"features"`
	Score    *float64             `json:"score"`
	Label    bool                 `json:"label"`
}

type ReceiveSchemaSentence struct {
	Position   int                      `json:"position"`
	Text       string                   `json:"text"`
	Tokens     []ppi.Token              `json:"tokens"`
	Candidates []ReceiveSchemaCandidate `json:"candidates"`
}

/*
ReceiveSchema is the analysis result of one article; Error is set instead of Sentences when the
pipeline failed.
*/
type ReceiveSchema struct {
	RequestID      string                  `json:"request_id"`
	ArticleID      uint                    `json:"article_id"`
	TaskID         *uint                   `json:"task_id"`
	PMID           string                  `json:"pmid"`
	FeatureVersion string                  `json:"feature_version"`
	Sentences      []ReceiveSchemaSentence `json:"sentences"`
	Error          string                  `json:"error,omitempty"`
}

var (
	ErrClosed        = errors.New("broker has been closed")
	ErrQueueNotFound = errors.New("queue not found in rabbit mq")

	errEmptyBody   = errors.New("message body is empty")
	errMessageType = errors.New("unexpected message type")
)

/*
MQConnectionConfig locates the broker.

	Prefetch: unacknowledged articles a worker holds at once, 1 when not positive
*/
type MQConnectionConfig struct {
	User     string
	Pwd      string
	Host     string
	Port     string
	Prefetch int
}

func (c *MQConnectionConfig) ToURL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Pwd),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/",
	}
	return u.String()
}

func GenerateTestMQConnectionConfig() MQConnectionConfig {
	return MQConnectionConfig{
		User: "guest",
		Pwd:  "guest",
		Host: "localhost",
		Port: "5672",
	}
}

// articleSender publishes the two kinds of messages a task exchanges.
type articleSender interface {
	PublishArticle(send SendSchema) error
	PublishResult(result ReceiveSchema) error
}

type articleQueues struct {
	input  string
	output string
}

var defaultArticleQueues = articleQueues{input: QueueArticleInput, output: QueueArticleOutput}

type articleBroker struct {
	logger   *logrus.Logger
	conn     *amqp.Connection
	names    articleQueues
	queues   map[string]amqp.Queue
	prefetch int

	listenLock sync.Mutex
	listeners  map[string]chan<- struct{} // queue name -> stop
	closer     sync.Once
}

func newArticleBroker(config *MQConnectionConfig, names articleQueues, logger *logrus.Logger) (*articleBroker, error) {
	conn, err := amqp.Dial(config.ToURL())
	if err != nil {
		return nil, utils.WrapError(err, "create connection fail")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, utils.WrapError(err, "create channel fail")
	}
	defer ch.Close()

	queues := make(map[string]amqp.Queue, 2)
	for _, name := range []string{names.input, names.output} {
		q, err := ch.QueueDeclare(name, false, false, false, false, nil)
		if err != nil {
			conn.Close()
			return nil, utils.WrapErrorf(err, "declare queue [%s] fail", name)
		}
		queues[name] = q
	}

	prefetch := config.Prefetch
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}

	return &articleBroker{
		logger:    logger,
		conn:      conn,
		names:     names,
		queues:    queues,
		prefetch:  prefetch,
		listeners: make(map[string]chan<- struct{}),
	}, nil
}

func (b *articleBroker) Close() error {
	var err error
	closeCalled := false

	b.closer.Do(func() {
		closeCalled = true

		b.listenLock.Lock()
		for name, stop := range b.listeners {
			b.logger.Infof("stop listening queue [%s] for closing the broker", name)
			close(stop)
		}
		b.listeners = nil
		b.listenLock.Unlock()

		err = b.conn.Close()
	})

	if !closeCalled {
		return ErrClosed
	}
	return err
}

func (b *articleBroker) PublishArticle(send SendSchema) error {
	return b.publish(b.names.input, messageTypeArticle, send.RequestID, send)
}

func (b *articleBroker) PublishResult(result ReceiveSchema) error {
	return b.publish(b.names.output, messageTypeResult, result.RequestID, result)
}

// publish keeps the request id of the article as correlation id, so a result can be traced to its request.
func (b *articleBroker) publish(queueName, messageType, correlationID string, obj any) error {
	queue, ok := b.queues[queueName]
	if !ok {
		return ErrQueueNotFound
	}

	body, err := json.Marshal(obj)
	if err != nil {
		return utils.WrapError(err, "json marshal fail")
	}

	ch, err := b.conn.Channel()
	if err != nil {
		return utils.WrapError(err, "create channel fail")
	}
	defer ch.Close()

	err = ch.Publish("", queue.Name, false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		Type:          messageType,
		MessageId:     uuid.NewString(),
		CorrelationId: correlationID,
		Timestamp:     time.Now(),
		Body:          body,
	})
	return utils.WrapErrorf(err, "publish %s to [%s] fail", messageType, queue.Name)
}

func (b *articleBroker) ListenArticles(handle func(msg *amqp.Delivery) error) error {
	return b.listen(b.names.input, handle)
}

func (b *articleBroker) ListenResults(handle func(msg *amqp.Delivery) error) error {
	return b.listen(b.names.output, handle)
}

/*
listen consumes queueName until the broker closes. A message is acknowledged once handle returns
nil; a failed message is dropped, never requeued, since the same body would fail again.
*/
func (b *articleBroker) listen(queueName string, handle func(msg *amqp.Delivery) error) error {
	queue, ok := b.queues[queueName]
	if !ok {
		return ErrQueueNotFound
	}

	ch, err := b.conn.Channel()
	if err != nil {
		return utils.WrapError(err, "create channel fail")
	}

	if err := ch.Qos(b.prefetch, 0, false); err != nil {
		ch.Close()
		return utils.WrapErrorf(err, "set prefetch %d fail", b.prefetch)
	}

	msgs, err := ch.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		return utils.WrapError(err, "create delivery-chan fail")
	}

	stop := make(chan struct{})

	b.listenLock.Lock()
	if b.listeners == nil {
		b.listenLock.Unlock()
		ch.Close()
		return ErrClosed
	}
	if old, ok := b.listeners[queueName]; ok {
		close(old)
	}
	b.listeners[queueName] = stop
	b.listenLock.Unlock()

	go b.consume(queueName, ch, msgs, stop, handle)
	return nil
}

func (b *articleBroker) consume(queueName string, ch *amqp.Channel, msgs <-chan amqp.Delivery, stop <-chan struct{}, handle func(msg *amqp.Delivery) error) {
	defer ch.Close()

	for {
		select {
		case msg, alive := <-msgs:
			if !alive {
				b.logger.Infof("exiting loop for listening queue [%s] due to channel closed", queueName)
				return
			}

			b.logger.Debugf("receive %s [%s] for request [%s] from [%s]", msg.Type, msg.MessageId, msg.CorrelationId, queueName)

			if err := handle(&msg); err != nil {
				b.logger.WithError(err).Errorf("handle message [%s] of queue [%s] fail: %s", msg.MessageId, queueName, err)
				if err := msg.Nack(false, false); err != nil {
					b.logger.WithError(err).Errorf("nack message [%s] fail: %s", msg.MessageId, err)
				}
				continue
			}

			if err := msg.Ack(false); err != nil {
				b.logger.WithError(err).Errorf("ack message [%s] fail: %s", msg.MessageId, err)
			}
		case <-stop:
			b.logger.Infof("exiting loop for listening queue [%s] due to Close signal", queueName)
			return
		}
	}
}

// decodeMessage unmarshals the body of msg into obj; messages carrying another type are rejected.
func decodeMessage(msg *amqp.Delivery, messageType string, obj any) error {
	if len(msg.Body) == 0 {
		return utils.WrapError(errEmptyBody, "msg.Body is empty")
	}

	if len(msg.Type) != 0 && msg.Type != messageType {
		return utils.WrapErrorf(errMessageType, "want %s, got %s", messageType, msg.Type)
	}

	if err := json.Unmarshal(msg.Body, obj); err != nil {
		return utils.WrapErrorf(err, "json unmarshal fail with[%#v]", string(msg.Body))
	}
	return nil
}
