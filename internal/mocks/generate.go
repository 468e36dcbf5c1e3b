package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ResultSink --dir ../domain/session --output domain/session --outpkg sessionmock --filename result_sink_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ResultArchive --dir ../domain/session --output domain/session --outpkg sessionmock --filename result_archive_mock.go
