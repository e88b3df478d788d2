package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	kafka "github.com/ONSdigital/dp-kafka/v4"
	"github.com/ONSdigital/log.go/v2/log"

	"github.com/cdss-cmips/adhoc-pivot-exporter/config"
	"github.com/cdss-cmips/adhoc-pivot-exporter/event"
	"github.com/cdss-cmips/adhoc-pivot-exporter/generator"
	"github.com/cdss-cmips/adhoc-pivot-exporter/schema"
)

const serviceName = "adhoc-pivot-exporter"

func main() {
	log.Namespace = serviceName
	ctx := context.Background()

	// Get Config
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(ctx, "error getting config", err)
		os.Exit(1)
	}

	// Create Kafka Producer
	kafkaProducer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		BrokerAddrs:  cfg.KafkaConfig.Addr,
		Topic:        cfg.KafkaConfig.ReportRequestedTopic,
		KafkaVersion: &cfg.KafkaConfig.Version,
	})
	if err != nil {
		log.Fatal(ctx, "fatal error trying to create kafka producer", err, log.Data{"topic": cfg.KafkaConfig.ReportRequestedTopic})
		os.Exit(1)
	}

	// kafka error logging go-routines
	kafkaProducer.LogErrors(ctx)

	gen := generator.New()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		e := scanEvent(scanner)
		if e.ReportID == "" {
			if e.ReportID, err = gen.UniqueID(); err != nil {
				log.Fatal(ctx, "failed to generate report id", err)
				os.Exit(1)
			}
		}
		log.Info(ctx, "sending report-requested event", log.Data{"reportRequestedEvent": e})

		// Wait for producer to be initialised
		<-kafkaProducer.Channels().Initialised
		if err := kafkaProducer.Send(ctx, schema.ReportRequested, e); err != nil {
			log.Fatal(ctx, "report-requested event error", err)
			os.Exit(1)
		}
	}
}

// scanEvent creates a ReportRequested event according to the user input
func scanEvent(scanner *bufio.Scanner) *event.ReportRequested {
	fmt.Println("--- [Send Kafka ReportRequested] ---")

	return &event.ReportRequested{
		ReportID:         prompt(scanner, "Please type the report_id (empty for a new one)"),
		County:           prompt(scanner, "Please type the county filter (empty or (All) for every county)"),
		Gender:           prompt(scanner, "Please type the gender filter"),
		SeverelyImpaired: prompt(scanner, "Please type the severely impaired filter"),
		Dimensions:       list(prompt(scanner, "Please type the dimensions, comma separated (at most 8)")),
		Measures:         list(prompt(scanner, "Please type the measures, comma separated (empty for the defaults)")),
	}
}

func prompt(scanner *bufio.Scanner, msg string) string {
	fmt.Println(msg)
	fmt.Printf("$ ")
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}

func list(s string) []string {
	out := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
