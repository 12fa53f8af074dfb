package config

// AWSConfig contains the shared AWS settings.
type AWSConfig struct {
	// Region is the AWS region every service client is created in.
	Region string `env:"AWS_REGION" envDefault:"us-east-1"`

	// SNSTopicARN receives the renewal outcome notifications. Empty disables
	// the SNS sink.
	SNSTopicARN string `env:"SNS_TOPIC_ARN" envDefault:""`

	// SNSSubjectPrefix prefixes every notification subject line.
	SNSSubjectPrefix string `env:"SNS_SUBJECT_PREFIX" envDefault:"siteops"`
}
