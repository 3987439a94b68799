package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/matchresult --output domain/matchresult --outpkg matchresultmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SnapshotRepository --dir ../domain/matchresult --output domain/matchresult --outpkg matchresultmock --filename snapshot_repository_mock.go
