package handler_test

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ONSdigital/dp-kafka/v4/avro"
	"github.com/ONSdigital/dp-kafka/v4/kafkatest"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/cdss-cmips/adhoc-pivot-exporter/config"
	"github.com/cdss-cmips/adhoc-pivot-exporter/event"
	"github.com/cdss-cmips/adhoc-pivot-exporter/handler"
	"github.com/cdss-cmips/adhoc-pivot-exporter/handler/mock"
	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"
	"github.com/cdss-cmips/adhoc-pivot-exporter/reporting"
	"github.com/cdss-cmips/adhoc-pivot-exporter/schema"

	. "github.com/smartystreets/goconvey/convey"
)

const (
	testPrivateBucket      = "test-private-bucket"
	testPublicBucket       = "test-public-bucket"
	testVaultPath          = "vault-root"
	testReportID           = "test-report-id"
	testS3Location         = "s3://myBucket/my-file.csv"
	testDownloadServiceURL = "http://test-download-service:23600"
	testCsvBody            = "RecipientCounty,ID Count\nOrange,2\n"
)

var (
	testPsk       = []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	errS3         = errors.New("test S3Upload error")
	errVault      = errors.New("test Vault error")
	errPsk        = errors.New("test PSK error")
	errReporting  = errors.New("test reporting API error")
	expectedS3Key = fmt.Sprintf("adhoc-reports/%s.csv", testReportID)
)

var ctx = context.Background()

func testCfg() config.Config {
	return config.Config{
		VaultPath:          testVaultPath,
		EncryptionDisabled: true,
		DownloadServiceURL: testDownloadServiceURL,
		ReportRowLimit:     1000,
	}
}

func testEngine() *pivot.Engine {
	return pivot.NewEngine(pivot.DefaultCatalog())
}

func testRows() *reporting.RowsResponse {
	return &reporting.RowsResponse{
		Status:  reporting.StatusSuccess,
		Columns: []string{"id", "recipientCounty", "totalHours"},
		Rows: []pivot.Row{
			{"id": "1", "recipientCounty": "Orange", "totalHours": 4},
			{"id": "2", "recipientCounty": "Orange", "totalHours": 6.5},
			{"id": "3", "recipientCounty": "Los Angeles", "totalHours": "10"},
		},
	}
}

func TestValidateEvent(t *testing.T) {
	Convey("Given a handler with the default catalog", t, func() {
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), nil, nil, nil, nil, nil, nil)

		Convey("An event without measures selects the catalog defaults", func() {
			sel, err := eventHandler.ValidateEvent(&event.ReportRequested{
				ReportID:   testReportID,
				Dimensions: []string{"recipientCounty", "", "recipientGender"},
			})
			So(err, ShouldBeNil)
			So(sel.ActiveDimensions(), ShouldResemble, []string{"recipientCounty", "recipientGender"})
			So(sel.Measures, ShouldResemble, pivot.DefaultCatalog().DefaultMeasures())
		})

		Convey("An event with (All) selects every measure", func() {
			sel, err := eventHandler.ValidateEvent(&event.ReportRequested{
				ReportID: testReportID,
				Measures: []string{pivot.MeasureAll},
			})
			So(err, ShouldBeNil)
			So(sel.Measures.AllSelected(pivot.DefaultCatalog()), ShouldBeTrue)
		})

		Convey("An event without a report id is rejected", func() {
			_, err := eventHandler.ValidateEvent(&event.ReportRequested{})
			So(err, ShouldResemble, errors.New("empty report id not allowed"))
		})

		Convey("An event with an unknown dimension is rejected", func() {
			_, err := eventHandler.ValidateEvent(&event.ReportRequested{
				ReportID:   testReportID,
				Dimensions: []string{"shoeSize"},
			})
			So(err, ShouldResemble, handler.NewError(
				errors.New("unknown dimension"),
				log.Data{"dimension": "shoeSize", "report_id": testReportID},
			))
		})

		Convey("An event with an unknown measure is rejected", func() {
			_, err := eventHandler.ValidateEvent(&event.ReportRequested{
				ReportID: testReportID,
				Measures: []string{"Median Hours"},
			})
			var aggErr *pivot.AggregationError
			So(errors.As(err, &aggErr), ShouldBeTrue)
			So(aggErr.Reason, ShouldEqual, pivot.ReasonUnknownMeasure)
		})

		Convey("An event with more than 8 dimensions is rejected", func() {
			_, err := eventHandler.ValidateEvent(&event.ReportRequested{
				ReportID: testReportID,
				Dimensions: []string{
					"recipientCounty", "recipientGender", "status", "serviceType",
					"serviceCategory", "districtId", "priorityLevel", "providerGender", "providerEthnicity",
				},
			})
			var aggErr *pivot.AggregationError
			So(errors.As(err, &aggErr), ShouldBeTrue)
			So(aggErr.Reason, ShouldEqual, pivot.ReasonTooManyDimensions)
		})
	})
}

func TestEncodeCSV(t *testing.T) {
	Convey("Grouped rows are written in column order with a header", t, func() {
		buf, err := handler.EncodeCSV([]pivot.Row{
			{"RecipientCounty": "Orange", "ID Count": 2, "Authorized Hours": 10.5},
			{"RecipientCounty": "Los Angeles, East", "ID Count": 1, "Authorized Hours": 0.0},
		}, []string{"RecipientCounty", "ID Count", "Authorized Hours"})
		So(err, ShouldBeNil)
		So(buf.String(), ShouldEqual, "RecipientCounty,ID Count,Authorized Hours\n"+
			"Orange,2,10.5\n"+
			"\"Los Angeles, East\",1,0\n")
	})

	Convey("Missing and nil values are written as empty cells", t, func() {
		buf, err := handler.EncodeCSV([]pivot.Row{
			{"a": "x", "b": nil},
		}, []string{"a", "b", "c"})
		So(err, ShouldBeNil)
		So(buf.String(), ShouldEqual, "a,b,c\nx,,\n")
	})

	Convey("Ungrouped rows keyed in a different case than the columns are still written", t, func() {
		rows := []pivot.Row{{"RecipientCounty": "Orange", "totalhours": 4}}
		columns := []string{"recipientCounty", "totalHours"}
		res, err := testEngine().Aggregate(rows, columns, pivot.Selection{Measures: pivot.DefaultCatalog().DefaultMeasures()})
		So(err, ShouldBeNil)
		So(res.Outcome, ShouldEqual, pivot.OutcomeUngrouped)

		buf, err := handler.EncodeCSV(res.Data, res.Columns)
		So(err, ShouldBeNil)
		So(buf.String(), ShouldEqual, "recipientCounty,totalHours\nOrange,4\n")
	})

	Convey("Without columns the sorted union of row keys is used", t, func() {
		buf, err := handler.EncodeCSV([]pivot.Row{
			{"b": 1},
			{"a": true},
		}, nil)
		So(err, ShouldBeNil)
		So(buf.String(), ShouldEqual, "a,b\n,1\ntrue,\n")
	})
}

func TestFetchData(t *testing.T) {
	Convey("Given a reporting client that returns stats and rows", t, func() {
		reportingClient := reportingHappy()
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), reportingClient, nil, nil, nil, nil, nil)

		Convey("When FetchData is called", func() {
			f := reporting.Filters{County: "Orange", Limit: 50}
			rows, stats, err := eventHandler.FetchData(ctx, f)

			Convey("Then both are returned", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldResemble, testRows())
				So(stats.TotalRecords, ShouldEqual, 3)
			})

			Convey("Then both calls use the filters", func() {
				So(reportingClient.GetRowsCalls(), ShouldHaveLength, 1)
				So(reportingClient.GetRowsCalls()[0].F, ShouldResemble, f)
				So(reportingClient.GetStatsCalls(), ShouldHaveLength, 1)
				So(reportingClient.GetStatsCalls()[0].F, ShouldResemble, f)
			})
		})
	})

	Convey("Given a reporting client whose stats call fails", t, func() {
		reportingClient := reportingHappy()
		reportingClient.GetStatsFunc = func(ctx context.Context, f reporting.Filters) (*reporting.Stats, error) {
			return nil, errReporting
		}
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), reportingClient, nil, nil, nil, nil, nil)

		Convey("Then FetchData returns the error", func() {
			_, _, err := eventHandler.FetchData(ctx, reporting.Filters{})
			So(err, ShouldEqual, errReporting)
		})
	})
}

func TestUploadCSVFile(t *testing.T) {
	expectedVaultPath := fmt.Sprintf("%s/adhoc-reports/%s.csv", testVaultPath, testReportID)

	Convey("Given an event handler with a successful S3 client and encryption disabled", t, func() {
		s3Private := s3Happy(testPrivateBucket)
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), nil, s3Private, nil, nil, nil, nil)

		Convey("When UploadCSVFile is triggered", func() {
			body := strings.NewReader(testCsvBody)
			loc, err := eventHandler.UploadCSVFile(ctx, testReportID, body)

			Convey("Then the expected location is returned with no error", func() {
				So(err, ShouldBeNil)
				So(loc, ShouldEqual, testS3Location)
			})

			Convey("Then the file is uploaded to the private bucket", func() {
				So(s3Private.UploadWithContextCalls(), ShouldHaveLength, 1)
				So(*s3Private.UploadWithContextCalls()[0].Input.Key, ShouldEqual, expectedS3Key)
				So(*s3Private.UploadWithContextCalls()[0].Input.Bucket, ShouldEqual, testPrivateBucket)
				So(s3Private.UploadWithContextCalls()[0].Input.Body, ShouldEqual, body)
				So(s3Private.UploadWithPSKCalls(), ShouldHaveLength, 0)
			})
		})
	})

	Convey("Given an event handler with reports published", t, func() {
		cfg := testCfg()
		cfg.PublishReports = true
		s3Private := s3Happy(testPrivateBucket)
		s3Public := s3Happy(testPublicBucket)
		eventHandler := handler.NewReportRequested(cfg, testEngine(), nil, s3Private, s3Public, nil, nil, nil)

		Convey("When UploadCSVFile is triggered", func() {
			_, err := eventHandler.UploadCSVFile(ctx, testReportID, strings.NewReader(testCsvBody))

			Convey("Then the file is uploaded to the public bucket only", func() {
				So(err, ShouldBeNil)
				So(s3Public.UploadWithContextCalls(), ShouldHaveLength, 1)
				So(*s3Public.UploadWithContextCalls()[0].Input.Bucket, ShouldEqual, testPublicBucket)
				So(s3Private.UploadWithContextCalls(), ShouldHaveLength, 0)
			})
		})
	})

	Convey("Given an event handler with a successful S3 client, Vault client and encryption enabled", t, func() {
		cfg := testCfg()
		cfg.EncryptionDisabled = false
		s3Private := s3Happy(testPrivateBucket)
		vaultClient := vaultHappy()
		eventHandler := handler.NewReportRequested(cfg, testEngine(), nil, s3Private, nil, vaultClient, nil, generatorHappy())

		Convey("When UploadCSVFile is triggered", func() {
			loc, err := eventHandler.UploadCSVFile(ctx, testReportID, strings.NewReader(testCsvBody))

			Convey("Then the expected location is returned with no error", func() {
				So(err, ShouldBeNil)
				So(loc, ShouldEqual, testS3Location)
			})

			Convey("Then the expected key is stored in vault", func() {
				So(vaultClient.WriteKeyCalls(), ShouldHaveLength, 1)
				So(vaultClient.WriteKeyCalls()[0].Path, ShouldEqual, expectedVaultPath)
				So(vaultClient.WriteKeyCalls()[0].Key, ShouldEqual, "key")
				So(vaultClient.WriteKeyCalls()[0].Value, ShouldEqual, hex.EncodeToString(testPsk))
			})

			Convey("Then the file is uploaded with the psk", func() {
				So(s3Private.UploadWithPSKCalls(), ShouldHaveLength, 1)
				So(*s3Private.UploadWithPSKCalls()[0].Input.Key, ShouldEqual, expectedS3Key)
				So(s3Private.UploadWithPSKCalls()[0].Psk, ShouldResemble, testPsk)
			})
		})
	})

	Convey("Given an event handler with an unsuccessful S3 client", t, func() {
		s3Private := s3Unhappy(testPrivateBucket)
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), nil, s3Private, nil, nil, nil, nil)

		Convey("Then UploadCSVFile returns the expected error", func() {
			_, err := eventHandler.UploadCSVFile(ctx, testReportID, strings.NewReader(testCsvBody))
			So(err, ShouldResemble, handler.NewError(
				fmt.Errorf("failed to upload un-encrypted private file to S3: %w", errS3),
				log.Data{
					"bucket":              testPrivateBucket,
					"filename":            expectedS3Key,
					"is_published":        false,
					"encryption_disabled": true,
				},
			))
		})
	})

	Convey("Given an event handler with an unsuccessful Vault client and encryption enabled", t, func() {
		cfg := testCfg()
		cfg.EncryptionDisabled = false
		s3Private := s3Happy(testPrivateBucket)
		eventHandler := handler.NewReportRequested(cfg, testEngine(), nil, s3Private, nil, vaultUnhappy(), nil, generatorHappy())

		Convey("Then UploadCSVFile returns the expected error and nothing is uploaded", func() {
			_, err := eventHandler.UploadCSVFile(ctx, testReportID, strings.NewReader(testCsvBody))
			So(err, ShouldResemble, handler.NewError(
				fmt.Errorf("failed to write key to vault: %w", errVault),
				log.Data{
					"bucket":              testPrivateBucket,
					"filename":            expectedS3Key,
					"is_published":        false,
					"encryption_disabled": false,
				},
			))
			So(s3Private.UploadWithPSKCalls(), ShouldHaveLength, 0)
		})
	})

	Convey("Given an event handler with a failing generator and encryption enabled", t, func() {
		cfg := testCfg()
		cfg.EncryptionDisabled = false
		gen := &mock.GeneratorMock{
			NewPSKFunc: func() ([]byte, error) { return nil, errPsk },
		}
		eventHandler := handler.NewReportRequested(cfg, testEngine(), nil, s3Happy(testPrivateBucket), nil, vaultHappy(), nil, gen)

		Convey("Then UploadCSVFile returns the expected error", func() {
			_, err := eventHandler.UploadCSVFile(ctx, testReportID, strings.NewReader(testCsvBody))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, fmt.Sprintf("failed to generate a PSK for encryption: %s", errPsk.Error()))
		})
	})

	Convey("Given an empty event handler", t, func() {
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), nil, nil, nil, nil, nil, nil)

		Convey("UploadCSVFile with an empty report id fails", func() {
			_, err := eventHandler.UploadCSVFile(ctx, "", strings.NewReader(testCsvBody))
			So(err, ShouldResemble, errors.New("empty report id not allowed"))
		})

		Convey("UploadCSVFile with a nil reader fails", func() {
			_, err := eventHandler.UploadCSVFile(ctx, testReportID, nil)
			So(err, ShouldResemble, errors.New("no file content has been provided"))
		})
	})
}

func TestHandle(t *testing.T) {
	Convey("Given a handler with successful dependencies", t, func() {
		reportingClient := reportingHappy()
		s3Private := s3Happy(testPrivateBucket)
		producer, sent := producerCapture()
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), reportingClient, s3Private, nil, nil, producer, nil)

		Convey("When a report grouped by county is requested", func() {
			msg := message(&event.ReportRequested{
				ReportID:   testReportID,
				County:     "Orange",
				Gender:     reporting.AllOption,
				Dimensions: []string{"recipientCounty"},
				Measures:   []string{"ID Count", "Authorized Hours"},
			})
			err := eventHandler.Handle(ctx, 1, msg)

			Convey("Then no error is returned", func() {
				So(err, ShouldBeNil)
			})

			Convey("Then the reporting API is queried with the event filters and configured limit", func() {
				So(reportingClient.GetRowsCalls(), ShouldHaveLength, 1)
				So(reportingClient.GetRowsCalls()[0].F, ShouldResemble, reporting.Filters{
					County: "Orange",
					Gender: reporting.AllOption,
					Limit:  1000,
				})
			})

			Convey("Then the grouped CSV is uploaded", func() {
				So(s3Private.UploadWithContextCalls(), ShouldHaveLength, 1)
				So(uploadedBody(s3Private), ShouldEqual, "RecipientCounty,ID Count,Authorized Hours\n"+
					"Orange,2,10.5\n"+
					"Los Angeles,1,10\n")
			})

			Convey("Then a report created event is produced", func() {
				So(*sent, ShouldHaveLength, 1)
				So((*sent)[0], ShouldResemble, &event.ReportCreated{
					ReportID:       testReportID,
					FileURL:        fmt.Sprintf("%s/downloads/adhoc-reports/%s.csv", testDownloadServiceURL, testReportID),
					RowCount:       2,
					SourceRowCount: 3,
					Size:           int32(len("RecipientCounty,ID Count,Authorized Hours\nOrange,2,10.5\nLos Angeles,1,10\n")),
				})
			})
		})

		Convey("When a report without dimensions is requested", func() {
			err := eventHandler.Handle(ctx, 1, message(&event.ReportRequested{ReportID: testReportID}))

			Convey("Then the raw rows are exported with the source columns", func() {
				So(err, ShouldBeNil)
				So(uploadedBody(s3Private), ShouldEqual, "id,recipientCounty,totalHours\n"+
					"1,Orange,4\n"+
					"2,Orange,6.5\n"+
					"3,Los Angeles,10\n")
				So(*sent, ShouldHaveLength, 1)
				So((*sent)[0].RowCount, ShouldEqual, 3)
			})
		})
	})

	Convey("Given a reporting API without matching rows", t, func() {
		reportingClient := reportingHappy()
		reportingClient.GetRowsFunc = func(ctx context.Context, f reporting.Filters) (*reporting.RowsResponse, error) {
			return &reporting.RowsResponse{Status: reporting.StatusSuccess}, nil
		}
		s3Private := s3Happy(testPrivateBucket)
		producer, sent := producerCapture()
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), reportingClient, s3Private, nil, nil, producer, nil)

		Convey("When a report is requested", func() {
			err := eventHandler.Handle(ctx, 1, message(&event.ReportRequested{
				ReportID:   testReportID,
				Dimensions: []string{"recipientCounty"},
			}))

			Convey("Then nothing is uploaded or produced", func() {
				So(err, ShouldBeNil)
				So(s3Private.UploadWithContextCalls(), ShouldHaveLength, 0)
				So(*sent, ShouldHaveLength, 0)
			})
		})
	})

	Convey("Given a failing reporting API", t, func() {
		reportingClient := reportingHappy()
		reportingClient.GetRowsFunc = func(ctx context.Context, f reporting.Filters) (*reporting.RowsResponse, error) {
			return nil, errReporting
		}
		producer, sent := producerCapture()
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), reportingClient, nil, nil, nil, producer, nil)

		Convey("Then Handle fails and nothing is produced", func() {
			err := eventHandler.Handle(ctx, 1, message(&event.ReportRequested{ReportID: testReportID}))
			So(errors.Is(err, errReporting), ShouldBeTrue)
			So(*sent, ShouldHaveLength, 0)
		})
	})

	Convey("Given a message that is not a report requested event", t, func() {
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), nil, nil, nil, nil, nil, nil)

		Convey("Then Handle fails to unmarshal it", func() {
			msg, err := kafkatest.NewMessage([]byte("not avro"), 0)
			So(err, ShouldBeNil)
			err = eventHandler.Handle(ctx, 1, msg)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, "failed to unmarshal event")
		})
	})
}

func TestProduceReportCreatedEvent(t *testing.T) {
	Convey("Given a producer that fails to send", t, func() {
		producer := &kafkatest.IProducerMock{
			SendFunc: func(ctx context.Context, s *avro.Schema, e interface{}) error {
				return errors.New("broker unavailable")
			},
		}
		eventHandler := handler.NewReportRequested(testCfg(), testEngine(), nil, nil, nil, nil, producer, nil)

		Convey("Then the error is wrapped", func() {
			err := eventHandler.ProduceReportCreatedEvent(ctx, &event.ReportCreated{ReportID: testReportID})
			So(err.Error(), ShouldEqual, "error sending report-created event: broker unavailable")
		})
	})
}

func message(e *event.ReportRequested) *kafkatest.Message {
	b, err := schema.ReportRequested.Marshal(e)
	So(err, ShouldBeNil)
	msg, err := kafkatest.NewMessage(b, 0)
	So(err, ShouldBeNil)
	return msg
}

func uploadedBody(s3 *mock.S3ClientMock) string {
	calls := s3.UploadWithContextCalls()
	So(calls, ShouldNotBeEmpty)
	body, ok := calls[len(calls)-1].Input.Body.(fmt.Stringer)
	So(ok, ShouldBeTrue)
	return body.String()
}

// producerCapture returns a producer mock that records every produced event
func producerCapture() (*kafkatest.IProducerMock, *[]*event.ReportCreated) {
	var mu sync.Mutex
	sent := []*event.ReportCreated{}
	return &kafkatest.IProducerMock{
		SendFunc: func(ctx context.Context, s *avro.Schema, e interface{}) error {
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, e.(*event.ReportCreated))
			return nil
		},
	}, &sent
}

func reportingHappy() *mock.ReportingClientMock {
	return &mock.ReportingClientMock{
		GetRowsFunc: func(ctx context.Context, f reporting.Filters) (*reporting.RowsResponse, error) {
			return testRows(), nil
		},
		GetStatsFunc: func(ctx context.Context, f reporting.Filters) (*reporting.Stats, error) {
			return &reporting.Stats{TotalRecords: 3, TotalHours: 20.5, AvgHours: 6.83}, nil
		},
	}
}

func s3Happy(bucket string) *mock.S3ClientMock {
	return &mock.S3ClientMock{
		UploadWithContextFunc: func(ctx context.Context, input *s3manager.UploadInput, options ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
			return &s3manager.UploadOutput{Location: testS3Location}, nil
		},
		UploadWithPSKFunc: func(input *s3manager.UploadInput, psk []byte) (*s3manager.UploadOutput, error) {
			return &s3manager.UploadOutput{Location: testS3Location}, nil
		},
		BucketNameFunc: func() string {
			return bucket
		},
	}
}

func s3Unhappy(bucket string) *mock.S3ClientMock {
	return &mock.S3ClientMock{
		UploadWithContextFunc: func(ctx context.Context, input *s3manager.UploadInput, options ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
			return nil, errS3
		},
		UploadWithPSKFunc: func(input *s3manager.UploadInput, psk []byte) (*s3manager.UploadOutput, error) {
			return nil, errS3
		},
		BucketNameFunc: func() string {
			return bucket
		},
	}
}

func vaultHappy() *mock.VaultClientMock {
	return &mock.VaultClientMock{
		WriteKeyFunc: func(path string, key string, value string) error {
			return nil
		},
	}
}

func vaultUnhappy() *mock.VaultClientMock {
	return &mock.VaultClientMock{
		WriteKeyFunc: func(path string, key string, value string) error {
			return errVault
		},
	}
}

func generatorHappy() *mock.GeneratorMock {
	return &mock.GeneratorMock{
		NewPSKFunc: func() ([]byte, error) {
			return testPsk, nil
		},
	}
}
