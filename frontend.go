package main

import "html/template"

// remoteTemplate renders the retro TV remote. The render context supplies the
// channel labels (in order) and the current shuffle timer.
var remoteTemplate = template.Must(template.New("remote").Parse(remotePageHTML))

type remotePageData struct {
	Channels     []string
	ShuffleTimer int
}

const remotePageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Retro TV Remote</title>

	<style>
		* {
			margin: 0;
			padding: 0;
			box-sizing: border-box;
		}

		body {
			font-family: "Courier New", Courier, monospace;
			background: #2b1d0e;
			background-image: repeating-linear-gradient(90deg, #2b1d0e 0px, #3a2813 6px, #2b1d0e 12px);
			color: #e8d8b0;
			min-height: 100vh;
			padding: 20px;
		}

		.remote {
			max-width: 420px;
			margin: 0 auto;
			background: #1a1208;
			border: 6px solid #8a6d3b;
			border-radius: 24px;
			padding: 24px;
			box-shadow: 0 12px 30px rgba(0, 0, 0, 0.7);
		}

		h1 {
			text-align: center;
			font-size: 22px;
			letter-spacing: 3px;
			text-transform: uppercase;
			color: #f0c040;
			text-shadow: 2px 2px 0 #000;
			margin-bottom: 20px;
		}

		.section {
			margin-bottom: 24px;
		}

		.section-title {
			font-size: 12px;
			text-transform: uppercase;
			letter-spacing: 2px;
			color: #a08c5a;
			border-bottom: 1px solid #5a4a28;
			padding-bottom: 6px;
			margin-bottom: 12px;
		}

		.channel-grid {
			display: grid;
			grid-template-columns: repeat(2, 1fr);
			gap: 10px;
		}

		button {
			padding: 12px 10px;
			background: linear-gradient(#5a4a28, #3a2f18);
			color: #f0e0b8;
			border: 2px solid #8a6d3b;
			border-radius: 10px;
			cursor: pointer;
			font-family: inherit;
			font-size: 14px;
			text-shadow: 1px 1px 0 #000;
			box-shadow: 0 4px 0 #141414;
		}

		button:hover {
			background: linear-gradient(#6a5a33, #4a3d20);
		}

		button:active {
			transform: translateY(3px);
			box-shadow: 0 1px 0 #141414;
		}

		.big-btn {
			width: 100%;
			font-size: 16px;
			padding: 16px;
			background: linear-gradient(#803020, #581f12);
			border-color: #a04a30;
		}

		.big-btn:hover {
			background: linear-gradient(#944 , #6a2818);
		}

		.mode-row {
			display: grid;
			grid-template-columns: repeat(3, 1fr);
			gap: 10px;
		}

		.status-label {
			margin-top: 12px;
			text-align: center;
			font-size: 13px;
			color: #9fd89f;
			background: #10180f;
			border: 1px solid #2f4a2a;
			border-radius: 6px;
			padding: 8px;
		}

		.timer-row {
			display: flex;
			gap: 10px;
		}

		.timer-row input {
			flex: 1;
			padding: 10px;
			background: #10180f;
			border: 2px solid #5a4a28;
			border-radius: 8px;
			color: #9fd89f;
			font-family: inherit;
			font-size: 16px;
			text-align: center;
		}

		.timer-row input:focus {
			outline: none;
			border-color: #f0c040;
		}
	</style>
</head>
<body>
	<div class="remote">
		<h1>&#128250; Retro TV</h1>

		<div class="section">
			<div class="section-title">Channels</div>
			<div class="channel-grid" id="channelGrid">
				{{range .Channels}}<button class="channel-btn" data-channel="{{.}}">{{.}}</button>
				{{end}}
			</div>
		</div>

		<div class="section">
			<button class="big-btn" onclick="nextVideo()">Next Video</button>
		</div>

		<div class="section">
			<div class="section-title">Auto Mode</div>
			<div class="mode-row">
				<button onclick="setAutoMode('global')">Global</button>
				<button onclick="setAutoMode('local')">Local</button>
				<button onclick="setAutoMode('off')">Off</button>
			</div>
			<div class="status-label" id="autoModeStatus">Current Auto Mode: Off</div>
		</div>

		<div class="section">
			<div class="section-title">Shuffle Timer (seconds)</div>
			<div class="timer-row">
				<input type="number" id="shuffleTimer" min="1" max="60" value="{{.ShuffleTimer}}">
				<button onclick="setShuffleTimer()">Set Timer</button>
			</div>
		</div>
	</div>

	<script>
		function switchChannel(channel) {
			fetch('/switch_channel', {
				method: 'POST',
				headers: {'Content-Type': 'application/json'},
				body: JSON.stringify({channel: channel})
			})
			.then(response => response.json())
			.then(data => console.log('Switched channel:', data))
			.catch(error => console.error('Error switching channel:', error));
		}

		function nextVideo() {
			fetch('/next_video', {method: 'POST'})
			.then(response => response.json())
			.then(data => console.log('Next video:', data))
			.catch(error => console.error('Error requesting next video:', error));
		}

		function setAutoMode(mode) {
			fetch('/set_auto_mode', {
				method: 'POST',
				headers: {'Content-Type': 'application/json'},
				body: JSON.stringify({mode: mode})
			})
			.then(response => response.json())
			.then(data => {
				// Reflect what the server reports back, not what was requested
				document.getElementById('autoModeStatus').textContent =
					'Current Auto Mode: ' + data.mode.charAt(0).toUpperCase() + data.mode.slice(1);
			})
			.catch(error => console.error('Error setting auto mode:', error));
		}

		function setShuffleTimer() {
			const timer = document.getElementById('shuffleTimer').value;
			fetch('/set_shuffle_timer', {
				method: 'POST',
				headers: {'Content-Type': 'application/json'},
				body: JSON.stringify({timer: timer})
			})
			.then(response => response.json())
			.then(data => console.log('Shuffle timer:', data))
			.catch(error => console.error('Error setting shuffle timer:', error));
		}

		var channelButtons = document.getElementsByClassName('channel-btn');
		for (var i = 0; i < channelButtons.length; i++) {
			channelButtons[i].addEventListener('click', function (event) {
				switchChannel(event.target.getAttribute('data-channel'));
			});
		}
	</script>
</body>
</html>`
